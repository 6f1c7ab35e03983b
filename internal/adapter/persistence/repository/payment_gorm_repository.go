package repository

import (
	"campusedge_payments/internal/domain/entities"
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRow struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	StudentID string    `gorm:"column:student_id;not null;index"`
	Amount    float64   `gorm:"column:amount;not null"`
	Agent     string    `gorm:"column:agent"`
	Source    string    `gorm:"column:source;not null"`
	Status    string    `gorm:"column:status;not null;index"`
	AdminNote string    `gorm:"column:admin_note"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// PaymentGormRepository persists payments in a relational database (Postgres
// in production, sqlite in tests).
type PaymentGormRepository struct {
	db    *gorm.DB
	table string
	now   func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentGormRepository)(nil)

func NewPaymentGormRepository(db *gorm.DB, table string) *PaymentGormRepository {
	return &PaymentGormRepository{db: db, table: tableOrDefault(table), now: time.Now}
}

// MigratePayments creates or updates the payments table.
func MigratePayments(db *gorm.DB, table string) error {
	return db.Table(tableOrDefault(table)).AutoMigrate(&paymentRow{})
}

func (r *PaymentGormRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = creationTime(r.now())

	row := toPaymentRow(p)
	if err := r.db.WithContext(ctx).Table(r.table).Create(&row).Error; err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	var row paymentRow
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Payment{}, nil
	}
	if err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentRow(row), nil
}

// Update applies the change and re-reads the row inside one transaction.
func (r *PaymentGormRepository) Update(ctx context.Context, id string, u entities.PaymentUpdate) (entities.Payment, error) {
	changes := map[string]any{"status": string(u.Status)}
	if u.Agent != nil {
		changes["agent"] = *u.Agent
	}
	if u.AdminNote != nil {
		changes["admin_note"] = *u.AdminNote
	}

	var updated entities.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Table(r.table).Where("id = ?", id)
		if len(u.AllowedFrom) > 0 {
			q = q.Where("status IN ?", statusStrings(u.AllowedFrom))
		}
		res := q.Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var row paymentRow
		if err := tx.Table(r.table).Where("id = ?", id).Take(&row).Error; err != nil {
			return err
		}
		updated = fromPaymentRow(row)
		return nil
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return updated, nil
}

func toPaymentRow(p entities.Payment) paymentRow {
	return paymentRow{
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

func fromPaymentRow(row paymentRow) entities.Payment {
	return entities.Payment{
		ID:        row.ID,
		StudentID: row.StudentID,
		Amount:    row.Amount,
		Agent:     row.Agent,
		Source:    entities.PaymentSource(row.Source),
		Status:    entities.PaymentStatus(row.Status),
		AdminNote: row.AdminNote,
		CreatedAt: row.CreatedAt.UTC(),
	}
}
