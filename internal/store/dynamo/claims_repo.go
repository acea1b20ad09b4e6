package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

type ClaimItem struct {
	ID               int64     `dynamodbav:"id"`
	Reference        string    `dynamodbav:"reference"`
	FileReference    string    `dynamodbav:"file_reference"`
	ContractID       int64     `dynamodbav:"contract_id"`
	GuaranteeCode    string    `dynamodbav:"guarantee_code"`
	CircumstanceCode string    `dynamodbav:"circumstance_code,omitempty"`
	DeclarationDate  time.Time `dynamodbav:"declaration_date"`
	IncidentDate     time.Time `dynamodbav:"incident_date"`
	ClaimedAmount    float64   `dynamodbav:"claimed_amount"`
	ApprovedAmount   float64   `dynamodbav:"approved_amount"`
	Description      string    `dynamodbav:"description,omitempty"`
	Status           string    `dynamodbav:"status"`
	Resolution       string    `dynamodbav:"resolution,omitempty"`
	CreatedAt        time.Time `dynamodbav:"created_at"`
}

func (i ClaimItem) ToCore() core.Claim {
	return core.Claim{
		ID:               i.ID,
		Reference:        i.Reference,
		FileReference:    i.FileReference,
		ContractID:       i.ContractID,
		GuaranteeCode:    i.GuaranteeCode,
		CircumstanceCode: i.CircumstanceCode,
		DeclarationDate:  i.DeclarationDate,
		IncidentDate:     i.IncidentDate,
		ClaimedAmount:    i.ClaimedAmount,
		ApprovedAmount:   i.ApprovedAmount,
		Description:      i.Description,
		Status:           core.ClaimStatus(i.Status),
		Resolution:       core.ResolutionType(i.Resolution),
		CreatedAt:        i.CreatedAt,
	}
}

func claimItemFromCore(c core.Claim) ClaimItem {
	return ClaimItem{
		ID:               c.ID,
		Reference:        c.Reference,
		FileReference:    c.FileReference,
		ContractID:       c.ContractID,
		GuaranteeCode:    c.GuaranteeCode,
		CircumstanceCode: c.CircumstanceCode,
		DeclarationDate:  c.DeclarationDate,
		IncidentDate:     c.IncidentDate,
		ClaimedAmount:    c.ClaimedAmount,
		ApprovedAmount:   c.ApprovedAmount,
		Description:      c.Description,
		Status:           string(c.Status),
		Resolution:       string(c.Resolution),
		CreatedAt:        c.CreatedAt,
	}
}

type ClaimRepo struct {
	client *dynamodb.Client
}

func NewClaimRepo(client *dynamodb.Client) *ClaimRepo {
	return &ClaimRepo{client: client}
}

func (r *ClaimRepo) Create(ctx context.Context, c core.Claim) (core.Claim, error) {
	if c.ID == 0 {
		id, err := nextSeq(ctx, r.client, "claim_id")
		if err != nil {
			return core.Claim{}, err
		}
		c.ID = id
	}

	av, err := attributevalue.MarshalMap(claimItemFromCore(c))
	if err != nil {
		return core.Claim{}, fmt.Errorf("claims.marshal: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(TableClaims),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return core.Claim{}, fmt.Errorf("%w: claim %d", core.ErrConflict, c.ID)
		}
		return core.Claim{}, fmt.Errorf("claims.putItem: %w", err)
	}
	return c, nil
}

func (r *ClaimRepo) Get(ctx context.Context, id int64) (core.Claim, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableClaims),
		Key:       numberKey("id", id),
	})
	if err != nil {
		return core.Claim{}, fmt.Errorf("claims.getItem: %w", err)
	}
	if out.Item == nil {
		return core.Claim{}, core.ErrNotFound
	}

	var item ClaimItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Claim{}, fmt.Errorf("claims.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

func (r *ClaimRepo) GetByReference(ctx context.Context, reference string) (core.Claim, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableClaims),
		IndexName:              aws.String(GSIClaimsReference),
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
		return core.Claim{}, fmt.Errorf("claims.queryByReference: %w", err)
	}
	if len(out.Items) == 0 {
		return core.Claim{}, core.ErrNotFound
	}

	var item ClaimItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return core.Claim{}, fmt.Errorf("claims.unmarshal: %w", err)
	}
	return item.ToCore(), nil
}

func (r *ClaimRepo) List(ctx context.Context, status core.ClaimStatus) ([]core.Claim, error) {
	var out *dynamodb.ScanOutput
	var err error

	if status != "" {
		out, err = r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(TableClaims),
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
			TableName: aws.String(TableClaims),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("claims.scan: %w", err)
	}

	var items []ClaimItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("claims.unmarshal: %w", err)
	}

	claims := make([]core.Claim, len(items))
	for i, item := range items {
		claims[i] = item.ToCore()
	}
	sort.Slice(claims, func(i, j int) bool {
		return claims[i].DeclarationDate.After(claims[j].DeclarationDate)
	})
	return claims, nil
}

// NextReference reserves a claim reference: SIN-YYYY-NNNNNN.
func (r *ClaimRepo) NextReference(ctx context.Context) (string, error) {
	year := time.Now().Year()
	seq, err := nextSeq(ctx, r.client, fmt.Sprintf("claim_%d", year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SIN-%d-%06d", year, seq), nil
}
