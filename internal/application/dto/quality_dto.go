package dto

import (
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// InspectionRequest uma tentativa de inspeção do Quality Gate.
type InspectionRequest struct {
	Checklist    map[string]bool `json:"checklist"`
	TrackingCode string          `json:"tracking_code"`
	Carrier      string          `json:"carrier"`
	Notes        string          `json:"notes"`
}

// InspectionResponse resultado da inspeção. OrderCompleted distingue a
// aprovação parcial (qualidade ok, sem rastreio) da expedição efetiva.
type InspectionResponse struct {
	Record         QualityRecordResponse `json:"record"`
	OrderCompleted bool                  `json:"order_completed"`
	FailedItems    []string              `json:"failed_items,omitempty"`
}

// QualityRecordResponse registro de inspeção na resposta HTTP.
type QualityRecordResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	OperatorID   string          `json:"operator_id"`
	Checklist    map[string]bool `json:"checklist"`
	TrackingCode string          `json:"tracking_code,omitempty"`
	Carrier      string          `json:"carrier,omitempty"`
	Approved     bool            `json:"approved"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromQualityRecord converte a entidade para resposta.
func FromQualityRecord(q *entity.QualityRecord) QualityRecordResponse {
	return QualityRecordResponse{
		ID:           q.ID,
		OrderID:      q.OrderID,
		OperatorID:   q.OperatorID,
		Checklist:    q.Checklist,
		TrackingCode: q.TrackingCode,
		Carrier:      q.Carrier,
		Approved:     q.Approved,
		Notes:        q.Notes,
		CreatedAt:    q.CreatedAt,
	}
}
