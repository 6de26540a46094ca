package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
	disputedto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/dispute"
)

// Keyword classification, first-matching-category wins. Logistics is checked
// before quality: a reason naming both resolves as logistics fault.
var logisticsKeywords = []string{"package", "damage", "courier", "weight"}
var qualityKeywords = []string{"quality", "fake", "expiry", "match", "product"}

const (
	notesLogisticsFault = "Auto-detected Logistics Issue. Retailer Refunded. Insurance Claim Initiated."
	notesQualityFault   = "Product Quality Issue. Wholesaler penalized. Retailer Refunded."
	notesUnderReview    = "Under Review"
)

type classification struct {
	resolution  domain.ResolutionStatus
	orderStatus domain.OrderStatus
	notes       string
}

func classifyReason(reason string) classification {
	reasonLower := strings.ToLower(reason)

	for _, kw := range logisticsKeywords {
		if strings.Contains(reasonLower, kw) {
			return classification{
				resolution:  domain.ResolutionLogisticsFault,
				orderStatus: domain.StatusRefunded,
				notes:       notesLogisticsFault,
			}
		}
	}
	for _, kw := range qualityKeywords {
		if strings.Contains(reasonLower, kw) {
			return classification{
				resolution:  domain.ResolutionWholesalerFault,
				orderStatus: domain.StatusRefunded,
				notes:       notesQualityFault,
			}
		}
	}
	return classification{
		resolution:  domain.ResolutionPending,
		orderStatus: domain.StatusDisputed,
		notes:       notesUnderReview,
	}
}

// RaiseDispute classifies a buyer dispute and applies the deterministic
// disposition. Ambiguous free text defaults to manual review rather than
// guessing fault. The dispute record and the order update commit together.
func (disputeUc *DefaultDisputeUsecase) RaiseDispute(ctx context.Context, input *disputedto.RaiseDisputeInput) (*disputedto.RaiseDisputeOutput, error) {
	if input.OrderID == "" || input.Reason == "" {
		return nil, fmt.Errorf("%w: order id and reason are required", domain.ErrValidation)
	}

	order, err := disputeUc.orderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusInspection {
		return nil, fmt.Errorf("%w: dispute can only be raised during the inspection window", domain.ErrInvalidOrderState)
	}

	verdict := classifyReason(input.Reason)

	// An auto-resolved fault refunds the buyer at the provider before any
	// local write; a failed refund leaves the order untouched and retryable.
	if verdict.orderStatus == domain.StatusRefunded && order.PaymentReference != "" {
		if err := disputeUc.provider.RefundPayment(ctx, order.PaymentReference, toPaise(order.TotalAmount)); err != nil {
			disputeUc.metrics.RecordError("dispute_refund")
			return nil, err
		}
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	disputeStatus := domain.DisputeResolved
	if verdict.resolution == domain.ResolutionPending {
		disputeStatus = domain.DisputePending
	}

	dispute := &domain.Dispute{
		ID:              idGenerator(),
		OrderID:         input.OrderID,
		RaisedBy:        input.RaisedBy,
		Reason:          input.Reason,
		EvidenceURLs:    input.EvidenceURLs,
		Status:          disputeStatus,
		Resolution:      verdict.resolution,
		ResolutionNotes: verdict.notes,
		CreatedAt:       time.Now(),
	}

	upd := domain.StatusUpdate{
		From:                domain.StatusInspection,
		To:                  verdict.orderStatus,
		SetDisputeReason:    input.Reason,
		SetResolutionStatus: verdict.resolution,
	}
	if err := disputeUc.disputeRepo.CreateDisputeWithOrderUpdate(ctx, dispute, upd); err != nil {
		return nil, err
	}

	disputeUc.metrics.RecordDisputeRaised(string(verdict.resolution))
	if verdict.orderStatus == domain.StatusRefunded {
		disputeUc.metrics.RecordOrderRefunded("dispute")
	}

	go func(event publisher.DisputeEvent) {
		if err := disputeUc.publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish kafka dispute event", "stage", "creating", "error", err.Error())
		}
	}(publisher.DisputeEvent{
		DisputeID:  dispute.ID,
		OrderID:    dispute.OrderID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		Resolution: string(dispute.Resolution),
		Notes:      dispute.ResolutionNotes,
	})

	return &disputedto.RaiseDisputeOutput{
		DisputeID:        dispute.ID,
		ResolutionStatus: string(verdict.resolution),
		Notes:            verdict.notes,
		OrderStatus:      string(verdict.orderStatus),
	}, nil
}

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
