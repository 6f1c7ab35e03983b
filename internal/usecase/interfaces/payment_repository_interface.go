package interfaces

import (
	"campusedge_payments/internal/domain/entities"
	"context"
)

// IPaymentRepository abstracts the payment store (Postgres, DynamoDB or the
// local JSON fallback file). Exactly one implementation is active per process.
//
// Contract:
//   - Create assigns ID and CreatedAt and returns the stored record.
//   - GetByID and Update return a zero Payment (empty ID) and a nil error when
//     the record does not exist; Update does the same when the record's status
//     is not in PaymentUpdate.AllowedFrom.
//   - Any returned error means the store itself failed.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	Update(ctx context.Context, id string, u entities.PaymentUpdate) (entities.Payment, error)
}
