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

const roomVenueIndex = "venueId-index"

type roomRepository struct {
	client *dynamodb.Client
	table  string
}

// NewRoomRepository returns a RoomRepository backed by the given DynamoDB
// table, keyed by room id with a venueId-index GSI.
func NewRoomRepository(client *dynamodb.Client, table string) domain.RoomRepository {
	return &roomRepository{client: client, table: table}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	item, err := attributevalue.MarshalMap(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put room: %w", err)
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	room := &domain.Room{}
	if err := attributevalue.UnmarshalMap(out.Item, room); err != nil {
		return nil, fmt.Errorf("unmarshal room: %w", err)
	}
	return room, nil
}

func (r *roomRepository) ListByVenueID(ctx context.Context, venueID string) ([]*domain.Room, error) {
	rooms := []*domain.Room{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.table),
			IndexName:              aws.String(roomVenueIndex),
			KeyConditionExpression: aws.String("venueId = :venueId"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":venueId": &types.AttributeValueMemberS{Value: venueID},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query rooms by venue: %w", err)
		}
		var page []*domain.Room
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal rooms: %w", err)
		}
		rooms = append(rooms, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return rooms, nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
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
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
