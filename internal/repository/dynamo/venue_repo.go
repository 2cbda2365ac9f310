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

type venueRepository struct {
	client *dynamodb.Client
	table  string
}

// NewVenueRepository returns a VenueRepository backed by the given DynamoDB
// table, keyed by venue id.
func NewVenueRepository(client *dynamodb.Client, table string) domain.VenueRepository {
	return &venueRepository{client: client, table: table}
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	item, err := attributevalue.MarshalMap(venue)
	if err != nil {
		return fmt.Errorf("marshal venue: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put venue: %w", err)
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	venue := &domain.Venue{}
	if err := attributevalue.UnmarshalMap(out.Item, venue); err != nil {
		return nil, fmt.Errorf("unmarshal venue: %w", err)
	}
	return venue, nil
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	venues := []*domain.Venue{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan venues: %w", err)
		}
		var page []*domain.Venue
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal venues: %w", err)
		}
		venues = append(venues, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return venues, nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
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
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}
