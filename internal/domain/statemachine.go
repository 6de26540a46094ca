package domain

// transitions is the single source of truth for the order lifecycle.
// Every mutating operation must consult ValidateTransition before writing.
//
// CANCELLED is reachable only before funds enter escrow. Terminal states
// have no outgoing edges.
var transitions = map[OrderStatus]map[OrderStatus]bool{
	StatusCreated: {
		StatusPaymentInEscrow: true,
		StatusCanceled:        true,
	},
	StatusPaymentPending: {
		StatusPaymentInEscrow: true,
		StatusCanceled:        true,
	},
	StatusPaymentInEscrow: {
		StatusShipped:  true,
		StatusRefunded: true,
	},
	StatusShipped: {
		StatusDelivered:  true,
		StatusInspection: true, // OTP verification may skip DELIVERED
	},
	StatusDelivered: {
		StatusInspection: true,
	},
	StatusInspection: {
		StatusReleased: true,
		StatusDisputed: true,
		StatusRefunded: true,
	},
	StatusDisputed: {
		StatusRefunded: true,
	},
}

// ValidateTransition reports whether current -> target is a legal edge.
// Pure and total: unknown pairs return false. A false result is a client
// error, never a server fault.
func ValidateTransition(current, target OrderStatus) bool {
	return transitions[current][target]
}
