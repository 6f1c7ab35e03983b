package request

import (
	"campusedge_payments/internal/usecase"
	"strings"
)

// SubmitPaymentRequest is posted by agents and the web client.
//
// phone is accepted for compatibility with existing clients but is not stored.
type SubmitPaymentRequest struct {
	StudentID string  `json:"studentId" binding:"required" example:"STU-2025-0042"`
	Amount    float64 `json:"amount" example:"45000"`
	Agent     string  `json:"agent" example:"agent-ikeja-01"`
	Source    string  `json:"source" example:"agent" enums:"agent,web"`
	Phone     string  `json:"phone" example:"2348012345678"`
}

func (r SubmitPaymentRequest) ToInput() usecase.SubmitPaymentInput {
	return usecase.SubmitPaymentInput{
		StudentID: strings.TrimSpace(r.StudentID),
		Amount:    r.Amount,
		Agent:     strings.TrimSpace(r.Agent),
		Source:    strings.TrimSpace(r.Source),
		Phone:     strings.TrimSpace(r.Phone),
	}
}

type AgentApproveRequest struct {
	PaymentID string `json:"paymentId" binding:"required" example:"fx_1740825000000"`
	Agent     string `json:"agent" example:"agent-ikeja-01"`
}

// AdminApproveRequest finalizes a payment. notifyPhone, when set, receives
// the approval SMS.
type AdminApproveRequest struct {
	PaymentID   string `json:"paymentId" binding:"required" example:"fx_1740825000000"`
	AdminNote   string `json:"adminNote" example:"verified against bank statement"`
	NotifyPhone string `json:"notifyPhone" example:"2348012345678"`
}
