package dynamo

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"roomscheduler/config"
)

// NewClient creates a DynamoDB client from app config. A non-empty Endpoint
// points the client at DynamoDB Local; credentials are static either way
// (local tooling uses dummy keys).
func NewClient(cfg config.AWSConfig) *dynamodb.Client {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// conditionFailed reports whether err is a rejected ConditionExpression.
// Repositories translate these into business sentinels; anything else is a
// storage fault and propagates wrapped.
func conditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
