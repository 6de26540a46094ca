package domain

import (
	"context"
	"time"
)

type DisputeStatus string

const (
	DisputePending  DisputeStatus = "pending"
	DisputeResolved DisputeStatus = "resolved"
)

type Dispute struct {
	ID              string
	OrderID         string
	RaisedBy        string
	Reason          string
	EvidenceURLs    []string
	Status          DisputeStatus
	Resolution      ResolutionStatus
	ResolutionNotes string
	CreatedAt       time.Time
}

type DisputeRepository interface {
	// CreateDisputeWithOrderUpdate appends the dispute record and applies the
	// order status update in one transaction. The order write is conditional
	// on upd.From; a lost race surfaces as ErrConflict and nothing is written.
	CreateDisputeWithOrderUpdate(ctx context.Context, dispute *Dispute, upd StatusUpdate) error
	GetDisputeByOrderID(ctx context.Context, orderID string) (*Dispute, error)
}
