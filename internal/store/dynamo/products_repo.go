package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

type ProductItem struct {
	ID            int64   `dynamodbav:"id"`
	Code          string  `dynamodbav:"code"`
	Name          string  `dynamodbav:"name"`
	Category      string  `dynamodbav:"category,omitempty"`
	BasePremium   float64 `dynamodbav:"base_premium"`
	CoverageLimit float64 `dynamodbav:"coverage_limit"`
	MinThreshold  float64 `dynamodbav:"min_threshold"`
	WaitingMonths int     `dynamodbav:"waiting_months"`
	Status        string  `dynamodbav:"status"`
	Description   string  `dynamodbav:"description,omitempty"`
}

func (i ProductItem) ToCore() core.Product {
	return core.Product{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		Category:      i.Category,
		BasePremium:   i.BasePremium,
		CoverageLimit: i.CoverageLimit,
		MinThreshold:  i.MinThreshold,
		WaitingMonths: i.WaitingMonths,
		Status:        core.Status(i.Status),
		Description:   i.Description,
	}
}

type GuaranteeItem struct {
	ID            int64  `dynamodbav:"id"`
	ProductID     int64  `dynamodbav:"product_id"`
	Code          string `dynamodbav:"code"`
	Name          string `dynamodbav:"name"`
	WaitingMonths *int   `dynamodbav:"waiting_months,omitempty"`
	Status        string `dynamodbav:"status"`
	Description   string `dynamodbav:"description,omitempty"`
}

func (i GuaranteeItem) ToCore() core.Guarantee {
	return core.Guarantee{
		ID:            i.ID,
		ProductID:     i.ProductID,
		Code:          i.Code,
		Name:          i.Name,
		WaitingMonths: i.WaitingMonths,
		Status:        core.Status(i.Status),
		Description:   i.Description,
	}
}

type ProductRepo struct {
	client *dynamodb.Client
}

func NewProductRepo(client *dynamodb.Client) *ProductRepo {
	return &ProductRepo{client: client}
}

// List scans for active products; DynamoDB has no ordered scan so the sort by
// code happens client-side.
func (r *ProductRepo) List(ctx context.Context) ([]core.Product, error) {
	filter := expression.Name("status").Equal(expression.Value(string(core.StatusActive)))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("products.expression: %w", err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(TableProducts),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("products.scan: %w", err)
	}

	var items []ProductItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("products.unmarshal: %w", err)
	}

	products := make([]core.Product, len(items))
	for i, item := range items {
		products[i] = item.ToCore()
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })
	return products, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (core.Product, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableProducts),
		Key:       numberKey("id", id),
	})
	if err != nil {
		return core.Product{}, fmt.Errorf("products.getItem: %w", err)
	}
	if out.Item == nil {
		return core.Product{}, core.ErrNotFound
	}

	var item ProductItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Product{}, fmt.Errorf("products.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (core.Product, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableProducts),
		IndexName:              aws.String(GSIProductsCode),
		KeyConditionExpression: aws.String("code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return core.Product{}, fmt.Errorf("products.queryByCode: %w", err)
	}
	if len(out.Items) == 0 {
		return core.Product{}, core.ErrNotFound
	}

	var item ProductItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return core.Product{}, fmt.Errorf("products.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

// GuaranteesFor queries the product GSI; the range key keeps the result in
// code order.
func (r *ProductRepo) GuaranteesFor(ctx context.Context, productID int64) ([]core.Guarantee, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableGuarantees),
		IndexName:              aws.String(GSIGuaranteesProduct),
		KeyConditionExpression: aws.String("product_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": numberAttr(productID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("guarantees.query: %w", err)
	}

	var items []GuaranteeItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("guarantees.unmarshal: %w", err)
	}

	var guarantees []core.Guarantee
	for _, item := range items {
		if item.Status != string(core.StatusActive) {
			continue
		}
		guarantees = append(guarantees, item.ToCore())
	}
	return guarantees, nil
}

func (r *ProductRepo) GetGuarantee(ctx context.Context, productID int64, code string) (core.Guarantee, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableGuarantees),
		IndexName:              aws.String(GSIGuaranteesProduct),
		KeyConditionExpression: aws.String("product_id = :pid AND code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid":  numberAttr(productID),
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return core.Guarantee{}, fmt.Errorf("guarantees.query: %w", err)
	}
	if len(out.Items) == 0 {
		return core.Guarantee{}, core.ErrNotFound
	}

	var item GuaranteeItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return core.Guarantee{}, fmt.Errorf("guarantees.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

// Upsert writes a product and its guarantees, matching by code. Used by the
// seed command.
func (r *ProductRepo) Upsert(ctx context.Context, p core.Product, guarantees []core.Guarantee) error {
	productID := p.ID
	if productID == 0 {
		existing, err := r.GetByCode(ctx, p.Code)
		switch {
		case err == nil:
			productID = existing.ID
		case errors.Is(err, core.ErrNotFound):
			productID, err = nextSeq(ctx, r.client, "product_id")
			if err != nil {
				return err
			}
		default:
			return err
		}
	}

	item := ProductItem{
		ID:            productID,
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		BasePremium:   p.BasePremium,
		CoverageLimit: p.CoverageLimit,
		MinThreshold:  p.MinThreshold,
		WaitingMonths: p.WaitingMonths,
		Status:        string(p.Status),
		Description:   p.Description,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("products.marshal: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(TableProducts),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("products.putItem: %w", err)
	}

	for _, g := range guarantees {
		guaranteeID := g.ID
		if guaranteeID == 0 {
			existing, err := r.GetGuarantee(ctx, productID, g.Code)
			switch {
			case err == nil:
				guaranteeID = existing.ID
			case errors.Is(err, core.ErrNotFound):
				guaranteeID, err = nextSeq(ctx, r.client, "guarantee_id")
				if err != nil {
					return err
				}
			default:
				return err
			}
		}

		gi := GuaranteeItem{
			ID:            guaranteeID,
			ProductID:     productID,
			Code:          g.Code,
			Name:          g.Name,
			WaitingMonths: g.WaitingMonths,
			Status:        string(g.Status),
			Description:   g.Description,
		}
		gav, err := attributevalue.MarshalMap(gi)
		if err != nil {
			return fmt.Errorf("guarantees.marshal: %w", err)
		}
		if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(TableGuarantees),
			Item:      gav,
		}); err != nil {
			return fmt.Errorf("guarantees.putItem: %w", err)
		}
	}
	return nil
}
