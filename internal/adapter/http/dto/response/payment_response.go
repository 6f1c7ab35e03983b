package response

import (
	"campusedge_payments/internal/domain/entities"
	"time"
)

type PaymentResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Amount    float64   `json:"amount"`
	Agent     string    `json:"agent,omitempty"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	AdminNote string    `json:"adminNote,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentEnvelope is the body of every successful payment operation.
type PaymentEnvelope struct {
	OK      bool            `json:"ok"`
	Payment PaymentResponse `json:"payment"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		StudentID: p.StudentID,
		Amount:    p.Amount,
		Agent:     p.Agent,
		Source:    string(p.Source),
		Status:    string(p.Status),
		AdminNote: p.AdminNote,
		CreatedAt: p.CreatedAt,
	}
}

func NewPaymentEnvelope(p entities.Payment) PaymentEnvelope {
	return PaymentEnvelope{OK: true, Payment: FromPayment(p)}
}
