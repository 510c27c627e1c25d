package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
	"github.com/devforge-portal/portal-backend/internal/users/domain"
)

// UserRepository provides persistence operations for users. Reads pass
// through the reconciler so only the canonical shape leaves this package.
type UserRepository struct {
	db    dynamo.API
	table string
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db dynamo.API, table string) *UserRepository {
	return &UserRepository{db: db, table: table}
}

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.db.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// Get fetches one user by id.
func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	out, err := r.db.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       idKey(id),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if out.Item == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return reconcileItem(out.Item)
}

// GetByCognitoUsername finds the store record linked to an identity-service
// account. The link is not indexed, so this is a filtered scan.
func (r *UserRepository) GetByCognitoUsername(ctx context.Context, username string) (domain.User, error) {
	filter := expression.Name("cognito_username").Equal(expression.Value(username))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return domain.User{}, fmt.Errorf("build username filter: %w", err)
	}
	out, err := r.db.Scan(ctx, &awsdynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("scan users by username: %w", err)
	}
	if len(out.Items) == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return reconcileItem(out.Items[0])
}

// List returns all users, reconciled.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	out, err := r.db.Scan(ctx, &awsdynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	items := make([]domain.User, 0, len(out.Items))
	for _, item := range out.Items {
		u, err := reconcileItem(item)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, nil
}

// Update overwrites the mutable fields of an existing user and returns the
// stored result. A missing id yields ErrNotFound, never an upsert.
func (r *UserRepository) Update(ctx context.Context, id string, u domain.User) (domain.User, error) {
	update := expression.
		Set(expression.Name("email"), expression.Value(u.Email)).
		Set(expression.Name("name"), expression.Value(u.Name)).
		Set(expression.Name("role"), expression.Value(string(u.Role))).
		Set(expression.Name("status"), expression.Value(string(u.Status))).
		Set(expression.Name("metadata"), expression.Value(u.Metadata)).
		Set(expression.Name("updated_at"), expression.Value(u.UpdatedAt))
	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return domain.User{}, fmt.Errorf("build update: %w", err)
	}

	out, err := r.db.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       idKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return reconcileItem(out.Attributes)
}

// MarkInactive flips a user's status to inactive, used by the consistency
// sweep when the linked identity account has disappeared.
func (r *UserRepository) MarkInactive(ctx context.Context, id string) error {
	update := expression.
		Set(expression.Name("status"), expression.Value(string(domain.StatusInactive))).
		Set(expression.Name("updated_at"), expression.Value(dynamo.NowISO()))
	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build mark inactive: %w", err)
	}

	_, err = r.db.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       idKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("mark user inactive: %w", err)
	}
	return nil
}

// Delete removes one user record by id. A missing id yields ErrNotFound.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func reconcileItem(item map[string]types.AttributeValue) (domain.User, error) {
	var raw map[string]any
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return domain.ReconcileUser(raw), nil
}
