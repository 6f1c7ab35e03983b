package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusedge_payments/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	putInput    *dynamodb.PutItemInput
	getInput    *dynamodb.GetItemInput
	updateInput *dynamodb.UpdateItemInput

	putErr    error
	getOut    *dynamodb.GetItemOutput
	getErr    error
	updateOut *dynamodb.UpdateItemOutput
	updateErr error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getInput = in
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, f.getErr
	}
	return f.getOut, f.getErr
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateInput = in
	if f.updateOut == nil {
		return &dynamodb.UpdateItemOutput{}, f.updateErr
	}
	return f.updateOut, f.updateErr
}

func mustMarshalItem(t *testing.T, p entities.Payment) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	require.NoError(t, err)
	return av
}

func TestPaymentDynamoRepository_Create(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewPaymentDynamoRepository(fake, "")
	now := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	repo.now = func() time.Time { return now }

	created, err := repo.Create(context.Background(), entities.Payment{StudentID: "S1", Amount: 500, Source: entities.PaymentSourceAgent, Status: entities.PaymentStatusPendingAgent})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(created.ID)
	assert.NoError(t, parseErr)
	assert.True(t, created.CreatedAt.Equal(now.Truncate(time.Microsecond)))

	require.NotNil(t, fake.putInput)
	assert.Equal(t, "payments", aws.ToString(fake.putInput.TableName))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(fake.putInput.ConditionExpression))

	var stored paymentItem
	require.NoError(t, attributevalue.UnmarshalMap(fake.putInput.Item, &stored))
	assert.Equal(t, created.ID, stored.ID)
	assert.Equal(t, "S1", stored.StudentID)
	assert.Equal(t, "pending_agent", stored.Status)
}

func TestPaymentDynamoRepository_CreateError(t *testing.T) {
	repo := NewPaymentDynamoRepository(&fakeDynamo{putErr: errors.New("throttled")}, "payments")
	_, err := repo.Create(context.Background(), entities.Payment{StudentID: "S1", Amount: 1})
	assert.EqualError(t, err, "throttled")
}

func TestPaymentDynamoRepository_GetByID(t *testing.T) {
	t.Run("missing item", func(t *testing.T) {
		repo := NewPaymentDynamoRepository(&fakeDynamo{}, "payments")
		got, err := repo.GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("found", func(t *testing.T) {
		want := entities.Payment{ID: "p1", StudentID: "S1", Amount: 500, Agent: "A1", Source: entities.PaymentSourceAgent, Status: entities.PaymentStatusApprovedByAgent, CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
		fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: mustMarshalItem(t, want)}}
		repo := NewPaymentDynamoRepository(fake, "payments")

		got, err := repo.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.True(t, aws.ToBool(fake.getInput.ConsistentRead))
	})
}

func TestPaymentDynamoRepository_Update(t *testing.T) {
	t.Run("guarded update expressions", func(t *testing.T) {
		want := entities.Payment{ID: "p1", StudentID: "S1", Amount: 500, Agent: "A1", Source: entities.PaymentSourceAgent, Status: entities.PaymentStatusApprovedByAgent}
		fake := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{Attributes: mustMarshalItem(t, want)}}
		repo := NewPaymentDynamoRepository(fake, "payments")

		agent := "A1"
		got, err := repo.Update(context.Background(), "p1", entities.PaymentUpdate{
			Status:      entities.PaymentStatusApprovedByAgent,
			Agent:       &agent,
			AllowedFrom: []entities.PaymentStatus{entities.PaymentStatusPendingAgent, entities.PaymentStatusPendingAdmin},
		})
		require.NoError(t, err)
		assert.Equal(t, "A1", got.Agent)

		in := fake.updateInput
		assert.Equal(t, "SET #status = :status, #agent = :agent", aws.ToString(in.UpdateExpression))
		assert.Equal(t, "attribute_exists(#id) AND #status IN (:from0, :from1)", aws.ToString(in.ConditionExpression))
		assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "pending_agent"}, in.ExpressionAttributeValues[":from0"])
	})

	t.Run("admin note without guard", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewPaymentDynamoRepository(fake, "payments")

		note := "ok"
		got, err := repo.Update(context.Background(), "p1", entities.PaymentUpdate{Status: entities.PaymentStatusApproved, AdminNote: &note})
		require.NoError(t, err)
		assert.Empty(t, got.ID)
		assert.Equal(t, "SET #status = :status, #admin_note = :admin_note", aws.ToString(fake.updateInput.UpdateExpression))
		assert.Equal(t, "attribute_exists(#id)", aws.ToString(fake.updateInput.ConditionExpression))
	})

	t.Run("condition failure is not found", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{Message: aws.String("failed")}}
		repo := NewPaymentDynamoRepository(fake, "payments")

		got, err := repo.Update(context.Background(), "missing", entities.PaymentUpdate{Status: entities.PaymentStatusApproved})
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("other errors surface", func(t *testing.T) {
		fake := &fakeDynamo{updateErr: errors.New("service unavailable")}
		repo := NewPaymentDynamoRepository(fake, "payments")

		_, err := repo.Update(context.Background(), "p1", entities.PaymentUpdate{Status: entities.PaymentStatusApproved})
		assert.EqualError(t, err, "service unavailable")
	})
}
