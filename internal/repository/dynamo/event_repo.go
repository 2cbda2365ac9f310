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

const (
	eventVenueIndex = "venueId-index"
	eventOwnerIndex = "ownerId-index"
)

type eventRepository struct {
	client *dynamodb.Client
	table  string
}

// NewEventRepository returns an EventRepository backed by the given DynamoDB
// table, keyed by event id with venueId-index and ownerId-index GSIs.
func NewEventRepository(client *dynamodb.Client, table string) domain.EventRepository {
	return &eventRepository{client: client, table: table}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	event := &domain.Event{}
	if err := attributevalue.UnmarshalMap(out.Item, event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) ListByVenueID(ctx context.Context, venueID string) ([]*domain.Event, error) {
	return r.queryAll(ctx, eventVenueIndex, "venueId = :v", map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberS{Value: venueID},
	})
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	return r.queryAll(ctx, eventOwnerIndex, "ownerId = :o", map[string]types.AttributeValue{
		":o": &types.AttributeValueMemberS{Value: ownerID},
	})
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *eventRepository) queryAll(ctx context.Context, index, keyCond string, values map[string]types.AttributeValue) ([]*domain.Event, error) {
	events := []*domain.Event{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    aws.String(keyCond),
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query events: %w", err)
		}
		var page []*domain.Event
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal events: %w", err)
		}
		events = append(events, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return events, nil
}
