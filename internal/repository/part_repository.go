package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/techmaintain/parts-service/internal/domain"
)

var (
	ErrPartNotFound      = errors.New("part not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type PartRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewPartRepository(client *dynamodb.Client, tableName string) *PartRepository {
	return &PartRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *PartRepository) CreatePart(ctx context.Context, part *domain.Part) error {
	av, err := attributevalue.MarshalMap(part)
	if err != nil {
		return fmt.Errorf("failed to marshal part: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *PartRepository) GetPart(ctx context.Context, partID string) (*domain.Part, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"part_id": &types.AttributeValueMemberS{Value: partID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrPartNotFound
	}

	var part domain.Part
	if err := attributevalue.UnmarshalMap(result.Item, &part); err != nil {
		return nil, fmt.Errorf("failed to unmarshal part: %w", err)
	}

	return &part, nil
}

func (r *PartRepository) ListParts(ctx context.Context) ([]domain.Part, error) {
	result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan parts: %w", err)
	}

	parts := make([]domain.Part, 0, len(result.Items))
	for _, item := range result.Items {
		var part domain.Part
		if err := attributevalue.UnmarshalMap(item, &part); err != nil {
			return nil, fmt.Errorf("failed to unmarshal part: %w", err)
		}
		parts = append(parts, part)
	}

	return parts, nil
}

func (r *PartRepository) UpdatePart(ctx context.Context, partID string, input domain.UpdatePartInput) error {
	update := expression.Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)
	if input.SerialNumber != nil {
		update = update.Set(expression.Name("serial_number"), expression.Value(*input.SerialNumber))
	}
	if input.Module != nil {
		update = update.Set(expression.Name("module"), expression.Value(*input.Module))
	}
	if input.Quantity != nil {
		update = update.Set(expression.Name("quantity"), expression.Value(*input.Quantity))
	}

	condition := expression.AttributeExists(expression.Name("part_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       partKey(partID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrPartNotFound
		}
		return fmt.Errorf("failed to update part: %w", err)
	}

	return nil
}

func (r *PartRepository) DeletePart(ctx context.Context, partID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 partKey(partID),
		ConditionExpression: aws.String("attribute_exists(part_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrPartNotFound
		}
		return fmt.Errorf("failed to delete part: %w", err)
	}

	return nil
}

// DeductStock atomically subtracts quantity from the part's stock. The update
// is guarded by a `quantity >= :n` condition so concurrent deductions can
// never drive the stock negative.
func (r *PartRepository) DeductStock(ctx context.Context, partID string, quantity int) (newStock int, previousStock int, err error) {
	part, err := r.GetPart(ctx, partID)
	if err != nil {
		return 0, 0, err
	}
	previousStock = part.Quantity

	update := expression.Set(
		expression.Name("quantity"),
		expression.Minus(
			expression.Name("quantity"),
			expression.Value(quantity),
		),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)

	condition := expression.GreaterThanEqual(
		expression.Name("quantity"),
		expression.Value(quantity),
	)

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return 0, previousStock, err
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       partKey(partID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return 0, previousStock, ErrInsufficientStock
		}
		return 0, previousStock, err
	}

	var updated domain.Part
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return 0, previousStock, err
	}

	return updated.Quantity, previousStock, nil
}

// RestoreStock adds quantity back to the part's stock. Used to compensate a
// confirmed deduction when the follow-up request insert fails.
func (r *PartRepository) RestoreStock(ctx context.Context, partID string, quantity int) error {
	update := expression.Set(
		expression.Name("quantity"),
		expression.Plus(
			expression.Name("quantity"),
			expression.Value(quantity),
		),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)

	condition := expression.AttributeExists(expression.Name("part_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       partKey(partID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrPartNotFound
		}
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	return nil
}

func partKey(partID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"part_id": &types.AttributeValueMemberS{Value: partID},
	}
}
