package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/devforge-portal/portal-backend/internal/projects/domain"
	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
)

// statusIndex is the GSI keyed by the status attribute.
const statusIndex = "StatusIndex"

// ProjectRepository provides persistence operations for projects. Reads pass
// through the reconciler so only the canonical shape leaves this package.
type ProjectRepository struct {
	db    dynamo.API
	table string
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db dynamo.API, table string) *ProjectRepository {
	return &ProjectRepository{db: db, table: table}
}

// Create inserts a new project. The id must be fresh; a duplicate is an error
// rather than an overwrite.
func (r *ProjectRepository) Create(ctx context.Context, p domain.Project) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	_, err = r.db.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// Get fetches one project by id, reconciled into the canonical shape.
func (r *ProjectRepository) Get(ctx context.Context, id string) (domain.Project, error) {
	out, err := r.db.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       idKey(id),
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	if out.Item == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return reconcileItem(out.Item)
}

// List returns all projects, reconciled.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	out, err := r.db.Scan(ctx, &awsdynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	return reconcileItems(out.Items)
}

// ListByStatus returns projects with the given status via the status index.
func (r *ProjectRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Project, error) {
	keyCond := expression.Key("status").Equal(expression.Value(string(status)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}
	out, err := r.db.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(statusIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("query projects by status: %w", err)
	}
	return reconcileItems(out.Items)
}

// Update overwrites the mutable fields of an existing project and returns the
// stored result. A missing id yields ErrNotFound, never an upsert.
func (r *ProjectRepository) Update(ctx context.Context, id string, p domain.Project) (domain.Project, error) {
	update := expression.
		Set(expression.Name("title"), expression.Value(p.Title)).
		Set(expression.Name("overview"), expression.Value(p.Overview)).
		Set(expression.Name("status"), expression.Value(string(p.Status))).
		Set(expression.Name("objectives"), expression.Value(p.Objectives)).
		Set(expression.Name("deliverables"), expression.Value(p.Deliverables)).
		Set(expression.Name("considerations"), expression.Value(p.Considerations)).
		Set(expression.Name("techStack"), expression.Value(p.TechStack)).
		Set(expression.Name("metadata"), expression.Value(p.Metadata)).
		Set(expression.Name("sections"), expression.Value(p.Sections)).
		Set(expression.Name("updated_at"), expression.Value(p.UpdatedAt))
	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return domain.Project{}, fmt.Errorf("build update: %w", err)
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
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("update project: %w", err)
	}
	return reconcileItem(out.Attributes)
}

// Delete removes one project by id. A missing id yields ErrNotFound.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if dynamo.IsConditionFailed(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func reconcileItem(item map[string]types.AttributeValue) (domain.Project, error) {
	var raw map[string]any
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return domain.Project{}, fmt.Errorf("unmarshal project: %w", err)
	}
	return domain.ReconcileProject(raw), nil
}

func reconcileItems(items []map[string]types.AttributeValue) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(items))
	for _, item := range items {
		p, err := reconcileItem(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
