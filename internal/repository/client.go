package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	pkgconfig "github.com/techmaintain/parts-service/pkg/config"
)

// NewDynamoDBClient builds the shared DynamoDB client. When DynamoEndpoint is
// set (dynamodb-local) the endpoint is overridden and static dummy credentials
// are used so no AWS profile is required.
func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.DynamoEndpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, err
	}

	if cfg.DynamoEndpoint != "" {
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}), nil
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}
