package models

import (
	"time"
)

type DisputeModel struct {
	ID              string `gorm:"primaryKey"`
	OrderID         string `gorm:"index"`
	RaisedBy        string
	Reason          string
	EvidenceURLs    string `gorm:"column:evidence_urls;type:jsonb"`
	Status          string
	Resolution      string
	ResolutionNotes string
	Order           OrderModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
