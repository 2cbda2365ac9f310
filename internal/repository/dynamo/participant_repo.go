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

const participantUserIndex = "userId-index"

type participantRepository struct {
	client *dynamodb.Client
	table  string
}

// NewParticipantRepository returns a ParticipantRepository backed by the given
// DynamoDB table. Partition key eventId, sort key userId; the userId-index GSI
// serves list-by-user queries.
func NewParticipantRepository(client *dynamodb.Client, table string) domain.ParticipantRepository {
	return &participantRepository{client: client, table: table}
}

// Add inserts the participation record only if none exists for the
// (event, user) pair. A rejected condition means the user already
// participates; that outcome is domain.ErrAlreadyParticipant, not a failure.
func (r *participantRepository) Add(ctx context.Context, p *domain.Participant) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal participant: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(eventId) AND attribute_not_exists(userId)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return domain.ErrAlreadyParticipant
		}
		return fmt.Errorf("put participant: %w", err)
	}
	return nil
}

// Remove deletes the participation record. Unconditional: removing a missing
// record succeeds, which keeps the operation idempotent.
func (r *participantRepository) Remove(ctx context.Context, eventID, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       participantKey(eventID, userID),
	})
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	return r.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("eventId = :eventId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eventId": &types.AttributeValueMemberS{Value: eventID},
		},
	})
}

func (r *participantRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Participant, error) {
	return r.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(participantUserIndex),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
}

func (r *participantRepository) Count(ctx context.Context, eventID string) (int, error) {
	count := 0
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.table),
			KeyConditionExpression: aws.String("eventId = :eventId"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":eventId": &types.AttributeValueMemberS{Value: eventID},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return 0, fmt.Errorf("count participants: %w", err)
		}
		count += int(out.Count)
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return count, nil
}

func (r *participantRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       participantKey(eventID, userID),
	})
	if err != nil {
		return false, fmt.Errorf("get participant: %w", err)
	}
	return out.Item != nil, nil
}

func (r *participantRepository) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]*domain.Participant, error) {
	participants := []*domain.Participant{}
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query participants: %w", err)
		}
		var page []*domain.Participant
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal participants: %w", err)
		}
		participants = append(participants, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return participants, nil
}

func participantKey(eventID, userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"eventId": &types.AttributeValueMemberS{Value: eventID},
		"userId":  &types.AttributeValueMemberS{Value: userID},
	}
}
