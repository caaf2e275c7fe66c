package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/techmaintain/parts-service/internal/domain"
)

type RequestRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewRequestRepository(client *dynamodb.Client, tableName string) *RequestRepository {
	return &RequestRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *RequestRepository) InsertRequest(ctx context.Context, request *domain.Request) error {
	av, err := attributevalue.MarshalMap(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
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

func (r *RequestRepository) GetRequest(ctx context.Context, requestID string) (*domain.Request, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       requestKey(requestID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrRequestNotFound
	}

	var request domain.Request
	if err := attributevalue.UnmarshalMap(result.Item, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}

	return &request, nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, requestID string, status string) error {
	update := expression.Set(
		expression.Name("status"),
		expression.Value(status),
	)
	condition := expression.AttributeExists(expression.Name("request_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       requestKey(requestID),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

// ListRequests returns every request, newest first. The table has no sort key
// on request_date, so ordering happens here after the scan.
func (r *RequestRepository) ListRequests(ctx context.Context) ([]domain.Request, error) {
	result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan requests: %w", err)
	}

	requests := make([]domain.Request, 0, len(result.Items))
	for _, item := range result.Items {
		var request domain.Request
		if err := attributevalue.UnmarshalMap(item, &request); err != nil {
			return nil, fmt.Errorf("failed to unmarshal request: %w", err)
		}
		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestDate.After(requests[j].RequestDate)
	})

	return requests, nil
}

func requestKey(requestID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"request_id": &types.AttributeValueMemberS{Value: requestID},
	}
}
