package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"roomscheduler/internal/domain"
)

const userEmailIndex = "email-index"

type userRepository struct {
	client *dynamodb.Client
	table  string
}

// NewUserRepository returns a UserRepository backed by the given DynamoDB
// table, keyed by user id with an email-index GSI for login lookups.
func NewUserRepository(client *dynamodb.Client, table string) domain.UserRepository {
	return &userRepository{client: client, table: table}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(userEmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, domain.ErrNotFound
	}
	user := &domain.User{}
	if err := attributevalue.UnmarshalMap(out.Items[0], user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	user := &domain.User{}
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return user, nil
}
