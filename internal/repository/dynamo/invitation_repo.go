package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"roomscheduler/internal/domain"
)

const invitationEventIndex = "eventId-index"

type invitationRepository struct {
	client *dynamodb.Client
	table  string
}

// NewInvitationRepository returns an InvitationRepository backed by the given
// DynamoDB table. The table's partition key is the invitation code; the
// eventId-index GSI serves list-by-event queries.
func NewInvitationRepository(client *dynamodb.Client, table string) domain.InvitationRepository {
	return &invitationRepository{client: client, table: table}
}

// Create inserts the invitation only if its code is not already taken.
// A lost race surfaces as domain.ErrCodeExists so the service can regenerate.
func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	item, err := attributevalue.MarshalMap(inv)
	if err != nil {
		return fmt.Errorf("marshal invitation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(code)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return domain.ErrCodeExists
		}
		return fmt.Errorf("put invitation: %w", err)
	}
	return nil
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	inv := &domain.Invitation{}
	if err := attributevalue.UnmarshalMap(out.Item, inv); err != nil {
		return nil, fmt.Errorf("unmarshal invitation: %w", err)
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	invs := []*domain.Invitation{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.table),
			IndexName:              aws.String(invitationEventIndex),
			KeyConditionExpression: aws.String("eventId = :eventId"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":eventId": &types.AttributeValueMemberS{Value: eventID},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query invitations by event: %w", err)
		}
		var page []*domain.Invitation
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal invitations: %w", err)
		}
		invs = append(invs, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return invs, nil
}

// TryRedeem consumes one use of the invitation. For unlimited invitations no
// write happens. For single-use invitations the decrement is a single
// conditional update with precondition remainingUses > 0: two concurrent
// redeemers can both read remainingUses == 1, but only one update passes the
// condition at the store.
func (r *invitationRepository) TryRedeem(ctx context.Context, code string) (*domain.Invitation, error) {
	inv, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if inv.Kind == domain.InvitationUnlimited {
		return inv, nil
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		UpdateExpression:    aws.String("SET remainingUses = remainingUses - :one, updatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(code) AND remainingUses > :zero"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":now":  &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if conditionFailed(err) {
			// The condition rejects both an exhausted code and a code deleted
			// since the read above; a follow-up read tells them apart.
			if _, getErr := r.GetByCode(ctx, code); getErr == domain.ErrNotFound {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrInvitationExhausted
		}
		return nil, fmt.Errorf("decrement invitation: %w", err)
	}

	snapshot := &domain.Invitation{}
	if err := attributevalue.UnmarshalMap(out.Attributes, snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal invitation snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *invitationRepository) Delete(ctx context.Context, code string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConditionExpression: aws.String("attribute_exists(code)"),
	})
	if err != nil {
		if conditionFailed(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}
