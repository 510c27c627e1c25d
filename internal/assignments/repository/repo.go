package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/devforge-portal/portal-backend/internal/assignments/domain"
	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
)

// AssignmentRepository provides persistence operations for assignments.
type AssignmentRepository struct {
	db    dynamo.API
	table string
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db dynamo.API, table string) *AssignmentRepository {
	return &AssignmentRepository{db: db, table: table}
}

// Create inserts a new assignment record.
func (r *AssignmentRepository) Create(ctx context.Context, a domain.Assignment) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal assignment: %w", err)
	}
	_, err = r.db.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put assignment: %w", err)
	}
	return nil
}

// Get fetches one assignment by id.
func (r *AssignmentRepository) Get(ctx context.Context, id string) (domain.Assignment, error) {
	out, err := r.db.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       idKey(id),
	})
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	if out.Item == nil {
		return domain.Assignment{}, domain.ErrNotFound
	}
	return reconcileItem(out.Item)
}

// List returns assignments, optionally filtered on project_id or user_id.
// Empty filter values mean no constraint.
func (r *AssignmentRepository) List(ctx context.Context, projectID, userID string) ([]domain.Assignment, error) {
	input := &awsdynamodb.ScanInput{TableName: aws.String(r.table)}

	var filter expression.ConditionBuilder
	hasFilter := false
	if projectID != "" {
		filter = expression.Name("project_id").Equal(expression.Value(projectID))
		hasFilter = true
	}
	if userID != "" {
		cond := expression.Name("user_id").Equal(expression.Value(userID))
		if hasFilter {
			filter = filter.And(cond)
		} else {
			filter = cond
			hasFilter = true
		}
	}
	if hasFilter {
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return nil, fmt.Errorf("build assignment filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	out, err := r.db.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan assignments: %w", err)
	}
	items := make([]domain.Assignment, 0, len(out.Items))
	for _, item := range out.Items {
		a, err := reconcileItem(item)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

// Update overwrites the mutable fields of an existing assignment and returns
// the stored result. A missing id yields ErrNotFound, never an upsert.
func (r *AssignmentRepository) Update(ctx context.Context, id string, a domain.Assignment) (domain.Assignment, error) {
	update := expression.
		Set(expression.Name("project_id"), expression.Value(a.ProjectID)).
		Set(expression.Name("user_id"), expression.Value(a.UserID)).
		Set(expression.Name("role"), expression.Value(string(a.Role))).
		Set(expression.Name("status"), expression.Value(string(a.Status))).
		Set(expression.Name("start_date"), expression.Value(a.StartDate)).
		Set(expression.Name("end_date"), expression.Value(a.EndDate)).
		Set(expression.Name("notes"), expression.Value(a.Notes)).
		Set(expression.Name("updated_at"), expression.Value(a.UpdatedAt))
	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("build update: %w", err)
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
			return domain.Assignment{}, domain.ErrNotFound
		}
		return domain.Assignment{}, fmt.Errorf("update assignment: %w", err)
	}
	return reconcileItem(out.Attributes)
}

// Delete removes one assignment by id. A missing id yields ErrNotFound.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func reconcileItem(item map[string]types.AttributeValue) (domain.Assignment, error) {
	var raw map[string]any
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return domain.Assignment{}, fmt.Errorf("unmarshal assignment: %w", err)
	}
	return domain.ReconcileAssignment(raw), nil
}
