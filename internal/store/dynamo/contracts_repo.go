package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

type ContractItem struct {
	ID            int64     `dynamodbav:"id"`
	Reference     string    `dynamodbav:"reference"`
	CustomerID    int64     `dynamodbav:"customer_id"`
	BrokerID      int64     `dynamodbav:"broker_id"`
	ProductID     int64     `dynamodbav:"product_id"`
	StartDate     time.Time `dynamodbav:"start_date"`
	EndDate       time.Time `dynamodbav:"end_date"`
	Status        string    `dynamodbav:"status"`
	VehiclesCount int       `dynamodbav:"vehicles_count"`
	PayFrequency  string    `dynamodbav:"pay_frequency"`
	TotalPremium  float64   `dynamodbav:"total_premium"`
	AutoRenewal   bool      `dynamodbav:"auto_renewal"`
	Notes         string    `dynamodbav:"notes,omitempty"`
	CreatedAt     time.Time `dynamodbav:"created_at"`
	UpdatedAt     time.Time `dynamodbav:"updated_at"`
}

func (i ContractItem) ToCore() core.Contract {
	return core.Contract{
		ID:            i.ID,
		Reference:     i.Reference,
		CustomerID:    i.CustomerID,
		BrokerID:      i.BrokerID,
		ProductID:     i.ProductID,
		StartDate:     i.StartDate,
		EndDate:       i.EndDate,
		Status:        core.Status(i.Status),
		VehiclesCount: i.VehiclesCount,
		PayFrequency:  core.PayFrequency(i.PayFrequency),
		TotalPremium:  i.TotalPremium,
		AutoRenewal:   i.AutoRenewal,
		Notes:         i.Notes,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func contractItemFromCore(c core.Contract) ContractItem {
	return ContractItem{
		ID:            c.ID,
		Reference:     c.Reference,
		CustomerID:    c.CustomerID,
		BrokerID:      c.BrokerID,
		ProductID:     c.ProductID,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Status:        string(c.Status),
		VehiclesCount: c.VehiclesCount,
		PayFrequency:  string(c.PayFrequency),
		TotalPremium:  c.TotalPremium,
		AutoRenewal:   c.AutoRenewal,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type ContractRepo struct {
	client *dynamodb.Client
}

func NewContractRepo(client *dynamodb.Client) *ContractRepo {
	return &ContractRepo{client: client}
}

func (r *ContractRepo) Create(ctx context.Context, c core.Contract) (core.Contract, error) {
	if c.ID == 0 {
		id, err := nextSeq(ctx, r.client, "contract_id")
		if err != nil {
			return core.Contract{}, err
		}
		c.ID = id
	}

	av, err := attributevalue.MarshalMap(contractItemFromCore(c))
	if err != nil {
		return core.Contract{}, fmt.Errorf("contracts.marshal: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(TableContracts),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return core.Contract{}, fmt.Errorf("%w: contract %d", core.ErrConflict, c.ID)
		}
		return core.Contract{}, fmt.Errorf("contracts.putItem: %w", err)
	}
	return c, nil
}

func (r *ContractRepo) Get(ctx context.Context, id int64) (core.Contract, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableContracts),
		Key:       numberKey("id", id),
	})
	if err != nil {
		return core.Contract{}, fmt.Errorf("contracts.getItem: %w", err)
	}
	if out.Item == nil {
		return core.Contract{}, core.ErrNotFound
	}

	var item ContractItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Contract{}, fmt.Errorf("contracts.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

func (r *ContractRepo) GetByReference(ctx context.Context, reference string) (core.Contract, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableContracts),
		IndexName:              aws.String(GSIContractsReference),
		KeyConditionExpression: aws.String("#ref = :ref"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "reference",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return core.Contract{}, fmt.Errorf("contracts.queryByReference: %w", err)
	}
	if len(out.Items) == 0 {
		return core.Contract{}, core.ErrNotFound
	}

	var item ContractItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return core.Contract{}, fmt.Errorf("contracts.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

func (r *ContractRepo) List(ctx context.Context, status core.Status) ([]core.Contract, error) {
	var out *dynamodb.ScanOutput
	var err error

	if status != "" {
		out, err = r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(TableContracts),
			FilterExpression: aws.String("#st = :st"),
			ExpressionAttributeNames: map[string]string{
				"#st": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":st": &types.AttributeValueMemberS{Value: string(status)},
			},
		})
	} else {
		out, err = r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName: aws.String(TableContracts),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("contracts.scan: %w", err)
	}
	return unmarshalContracts(out.Items)
}

func (r *ContractRepo) ListByBroker(ctx context.Context, brokerID int64) ([]core.Contract, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableContracts),
		IndexName:              aws.String(GSIContractsBroker),
		KeyConditionExpression: aws.String("broker_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": numberAttr(brokerID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("contracts.queryByBroker: %w", err)
	}
	return unmarshalContracts(out.Items)
}

func (r *ContractRepo) Update(ctx context.Context, c core.Contract) error {
	av, err := attributevalue.MarshalMap(contractItemFromCore(c))
	if err != nil {
		return fmt.Errorf("contracts.marshal: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(TableContracts),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return core.ErrNotFound
		}
		return fmt.Errorf("contracts.putItem: %w", err)
	}
	return nil
}

// FindExpired scans the status GSI for active contracts whose end date lies
// before asOf.
func (r *ContractRepo) FindExpired(ctx context.Context, asOf time.Time, limit int) ([]core.Contract, error) {
	filter := expression.Name("end_date").LessThan(expression.Value(asOf))
	keyCond := expression.Key("status").Equal(expression.Value(string(core.StatusActive)))
	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, fmt.Errorf("contracts.expression: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(TableContracts),
		IndexName:                 aws.String(GSIContractsStatus),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("contracts.queryExpired: %w", err)
	}

	contracts, err := unmarshalContracts(out.Items)
	if err != nil {
		return nil, err
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].EndDate.Before(contracts[j].EndDate)
	})
	if len(contracts) > limit {
		contracts = contracts[:limit]
	}
	return contracts, nil
}

// NextReference reserves a contract reference: DAS-YYYY-BBBBB-NNNNNN, broker
// id zero-padded in the middle segment.
func (r *ContractRepo) NextReference(ctx context.Context, brokerID int64) (string, error) {
	year := time.Now().Year()
	seq, err := nextSeq(ctx, r.client, fmt.Sprintf("contract_%d", year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DAS-%d-%05d-%06d", year, brokerID, seq), nil
}

func unmarshalContracts(raw []map[string]types.AttributeValue) ([]core.Contract, error) {
	var items []ContractItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("contracts.unmarshal: %w", err)
	}

	contracts := make([]core.Contract, len(items))
	for i, item := range items {
		contracts[i] = item.ToCore()
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].StartDate.After(contracts[j].StartDate)
	})
	return contracts, nil
}
