package entities

import "time"

// PaymentStatus is the position of a payment in the approval workflow.
//
// Lifecycle:
//   - pending_agent / pending_admin => approved_by_agent (agent approval)
//   - any non-terminal status        => approved (admin approval)
//
// approved is terminal.

type PaymentStatus string

const (
	PaymentStatusPendingAgent    PaymentStatus = "pending_agent"
	PaymentStatusPendingAdmin    PaymentStatus = "pending_admin"
	PaymentStatusApprovedByAgent PaymentStatus = "approved_by_agent"
	PaymentStatusApproved        PaymentStatus = "approved"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusApproved
}

// PaymentSource identifies who submitted the payment.
type PaymentSource string

const (
	PaymentSourceAgent PaymentSource = "agent"
	PaymentSourceWeb   PaymentSource = "web"
)

// NormalizePaymentSource maps anything other than "agent" to web.
func NormalizePaymentSource(raw string) PaymentSource {
	if PaymentSource(raw) == PaymentSourceAgent {
		return PaymentSourceAgent
	}
	return PaymentSourceWeb
}

// InitialStatus is the status a freshly submitted payment starts in.
func (s PaymentSource) InitialStatus() PaymentStatus {
	if s == PaymentSourceAgent {
		return PaymentStatusPendingAgent
	}
	return PaymentStatusPendingAdmin
}

// Payment is the tuition/fee payment record.
//
// Storage model:
//   - Postgres: table payments, PK id (uuid)
//   - DynamoDB: table payments, PK id (uuid)
//   - Fallback file: JSON array of Payment, id "fx_<unix millis>"
//
// ID, StudentID, Amount and CreatedAt never change after creation.

type Payment struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId"`
	Amount    float64       `json:"amount"`
	Agent     string        `json:"agent,omitempty"`
	Source    PaymentSource `json:"source"`
	Status    PaymentStatus `json:"status"`
	AdminNote string        `json:"adminNote,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// PaymentUpdate is the set of mutable fields a transition may touch.
//
// Agent and AdminNote are only written when non-nil. When AllowedFrom is not
// empty the update applies only if the stored status is one of them.
type PaymentUpdate struct {
	Status      PaymentStatus
	Agent       *string
	AdminNote   *string
	AllowedFrom []PaymentStatus
}

// Permits reports whether the update may be applied to a record in status s.
func (u PaymentUpdate) Permits(s PaymentStatus) bool {
	if len(u.AllowedFrom) == 0 {
		return true
	}
	for _, allowed := range u.AllowedFrom {
		if allowed == s {
			return true
		}
	}
	return false
}

// Apply merges the update into p, leaving immutable fields untouched.
func (u PaymentUpdate) Apply(p Payment) Payment {
	p.Status = u.Status
	if u.Agent != nil {
		p.Agent = *u.Agent
	}
	if u.AdminNote != nil {
		p.AdminNote = *u.AdminNote
	}
	return p
}
