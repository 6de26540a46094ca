package mappers

import (
	"encoding/json"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	var urls []string
	if model.EvidenceURLs != "" {
		_ = json.Unmarshal([]byte(model.EvidenceURLs), &urls)
	}
	return &domain.Dispute{
		ID:              model.ID,
		OrderID:         model.OrderID,
		RaisedBy:        model.RaisedBy,
		Reason:          model.Reason,
		EvidenceURLs:    urls,
		Status:          domain.DisputeStatus(model.Status),
		Resolution:      domain.ResolutionStatus(model.Resolution),
		ResolutionNotes: model.ResolutionNotes,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	urls := "[]"
	if len(dispute.EvidenceURLs) > 0 {
		if b, err := json.Marshal(dispute.EvidenceURLs); err == nil {
			urls = string(b)
		}
	}
	return &models.DisputeModel{
		ID:              dispute.ID,
		OrderID:         dispute.OrderID,
		RaisedBy:        dispute.RaisedBy,
		Reason:          dispute.Reason,
		EvidenceURLs:    urls,
		Status:          string(dispute.Status),
		Resolution:      string(dispute.Resolution),
		ResolutionNotes: dispute.ResolutionNotes,
		CreatedAt:       dispute.CreatedAt,
	}
}
