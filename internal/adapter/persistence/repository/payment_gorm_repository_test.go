package repository

import (
	"context"
	"testing"

	"campusedge_payments/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBForPayments(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, MigratePayments(db, "payments"))
	return db
}

func TestPaymentGormRepository_CreateAndGet(t *testing.T) {
	repo := NewPaymentGormRepository(setupTestDBForPayments(t), "payments")
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.Payment{StudentID: "S1", Amount: 500, Agent: "A0", Source: entities.PaymentSourceAgent, Status: entities.PaymentStatusPendingAgent})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "S1", got.StudentID)
	assert.Equal(t, 500.0, got.Amount)
	assert.Equal(t, entities.PaymentStatusPendingAgent, got.Status)
	assert.Equal(t, entities.PaymentSourceAgent, got.Source)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", created.CreatedAt, got.CreatedAt)

	missing, err := repo.GetByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestPaymentGormRepository_Update(t *testing.T) {
	repo := NewPaymentGormRepository(setupTestDBForPayments(t), "payments")
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.Payment{StudentID: "S1", Amount: 500, Source: entities.PaymentSourceAgent, Status: entities.PaymentStatusPendingAgent})
	require.NoError(t, err)

	agent := "A1"
	guard := []entities.PaymentStatus{entities.PaymentStatusPendingAgent, entities.PaymentStatusPendingAdmin, entities.PaymentStatusApprovedByAgent}
	updated, err := repo.Update(ctx, created.ID, entities.PaymentUpdate{Status: entities.PaymentStatusApprovedByAgent, Agent: &agent, AllowedFrom: guard})
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusApprovedByAgent, updated.Status)
	assert.Equal(t, "A1", updated.Agent)

	note := "ok"
	approved, err := repo.Update(ctx, created.ID, entities.PaymentUpdate{Status: entities.PaymentStatusApproved, AdminNote: &note})
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusApproved, approved.Status)
	assert.Equal(t, "ok", approved.AdminNote)
	assert.Equal(t, "A1", approved.Agent, "agent is kept when not part of the update")
	assert.Equal(t, 500.0, approved.Amount)
	assert.Equal(t, "S1", approved.StudentID)

	// guard rejects the regression and leaves the row untouched
	regressed, err := repo.Update(ctx, created.ID, entities.PaymentUpdate{Status: entities.PaymentStatusApprovedByAgent, AllowedFrom: guard})
	require.NoError(t, err)
	assert.Empty(t, regressed.ID)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusApproved, stored.Status)

	missing, err := repo.Update(ctx, "does-not-exist", entities.PaymentUpdate{Status: entities.PaymentStatusApproved})
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}
