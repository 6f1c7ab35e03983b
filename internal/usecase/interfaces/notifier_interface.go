package interfaces

import (
	"campusedge_payments/internal/domain/entities"
	"context"
)

// ILedgerNotifier appends one row to the external payments ledger (Google Sheets).
type ILedgerNotifier interface {
	AppendRow(ctx context.Context, values []any) error
}

// ISMSNotifier sends text messages through the SMS gateway (Termii).
//
// Configured reports whether gateway credentials are present; callers skip
// sending when it is false.
type ISMSNotifier interface {
	Configured() bool
	Send(ctx context.Context, to, message string) (entities.SMSDelivery, error)
}
