package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/alex-njugi/talex-app/internal/domain"
)

// ProductRepository is the DynamoDB-backed catalog store, keyed
// PRODUCT#<id>/METADATA like the order table.
type ProductRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewProductRepository(client *dynamodb.Client, tableName string) *ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *ProductRepository) put(ctx context.Context, p domain.Product) error {
	av, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	av["PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("PRODUCT#%s", p.ID)}
	av["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, p domain.Product) error {
	return r.put(ctx, p)
}

func (r *ProductRepository) Update(ctx context.Context, p domain.Product) error {
	return r.put(ctx, p)
}

func (r *ProductRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("PRODUCT#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Product{}, err
	}
	if len(out.Item) == 0 {
		return domain.Product{}, ErrProductNotFound
	}

	var p domain.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// GetBySlug scans for the slug. The catalog is small enough that a slug GSI
// is not worth carrying.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range all {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("PRODUCT#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		for _, item := range out.Items {
			var p domain.Product
			if err := attributevalue.UnmarshalMap(item, &p); err != nil {
				return nil, err
			}
			products = append(products, p)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return products, nil
}

// SeedIfEmpty is a no-op against the real backend.
func (r *ProductRepository) SeedIfEmpty(context.Context) error { return nil }
