package repository

import (
	"campusedge_payments/internal/domain/entities"
	"campusedge_payments/internal/usecase/interfaces"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// PaymentDynamoAPI is the subset of *dynamodb.Client the repository uses.
type PaymentDynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

type paymentItem struct {
	ID        string  `dynamodbav:"id"`
	StudentID string  `dynamodbav:"student_id"`
	Amount    float64 `dynamodbav:"amount"`
	Agent     string  `dynamodbav:"agent,omitempty"`
	Source    string  `dynamodbav:"source"`
	Status    string  `dynamodbav:"status"`
	AdminNote string  `dynamodbav:"admin_note,omitempty"`
	CreatedAt string  `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists payments in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type PaymentDynamoRepository struct {
	ddb       PaymentDynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb PaymentDynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName),
		now:       time.Now,
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = creationTime(r.now())

	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, id string, u entities.PaymentUpdate) (entities.Payment, error) {
	updateExpr, condExpr, names, values := buildPaymentUpdate(u)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condExpr),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

// buildPaymentUpdate renders a PaymentUpdate as DynamoDB expressions. The
// condition always requires the item to exist, plus the status guard when set.
func buildPaymentUpdate(u entities.PaymentUpdate) (updateExpr, condExpr string, names map[string]string, values map[string]types.AttributeValue) {
	names = map[string]string{
		"#id":     "id",
		"#status": "status",
	}
	values = map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(u.Status)},
	}
	sets := []string{"#status = :status"}

	if u.Agent != nil {
		names["#agent"] = "agent"
		values[":agent"] = &types.AttributeValueMemberS{Value: *u.Agent}
		sets = append(sets, "#agent = :agent")
	}
	if u.AdminNote != nil {
		names["#admin_note"] = "admin_note"
		values[":admin_note"] = &types.AttributeValueMemberS{Value: *u.AdminNote}
		sets = append(sets, "#admin_note = :admin_note")
	}

	condExpr = "attribute_exists(#id)"
	if len(u.AllowedFrom) > 0 {
		placeholders := make([]string, 0, len(u.AllowedFrom))
		for i, s := range u.AllowedFrom {
			key := fmt.Sprintf(":from%d", i)
			values[key] = &types.AttributeValueMemberS{Value: string(s)}
			placeholders = append(placeholders, key)
		}
		condExpr += " AND #status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	return "SET " + strings.Join(sets, ", "), condExpr, names, values
}

// CreatePaymentsTable creates the payments table (on-demand billing). An
// existing table is not an error.
func CreatePaymentsTable(ctx context.Context, ddb *dynamodb.Client, tableName string) error {
	_, err := ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableOrDefault(tableName)),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return err
	}
	return nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:        p.ID,
		StudentID: p.StudentID,
		Amount:    p.Amount,
		Agent:     p.Agent,
		Source:    string(p.Source),
		Status:    string(p.Status),
		AdminNote: p.AdminNote,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:        it.ID,
		StudentID: it.StudentID,
		Amount:    it.Amount,
		Agent:     it.Agent,
		Source:    entities.PaymentSource(it.Source),
		Status:    entities.PaymentStatus(it.Status),
		AdminNote: it.AdminNote,
		CreatedAt: createdAt,
	}
}
