package mongo

import (
	"time"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

// Collection names
const (
	ColProducts   = "products"
	ColGuarantees = "guarantees"
	ColContracts  = "contracts"
	ColClaims     = "claims"
	ColCounters   = "counters"
)

type ProductDoc struct {
	ID            int64   `bson:"_id"`
	Code          string  `bson:"code"`
	Name          string  `bson:"name"`
	Category      string  `bson:"category,omitempty"`
	BasePremium   float64 `bson:"base_premium"`
	CoverageLimit float64 `bson:"coverage_limit"`
	MinThreshold  float64 `bson:"min_threshold"`
	WaitingMonths int     `bson:"waiting_months"`
	Status        string  `bson:"status"`
	Description   string  `bson:"description,omitempty"`
}

func fromProductDoc(d ProductDoc) core.Product {
	return core.Product{
		ID:            d.ID,
		Code:          d.Code,
		Name:          d.Name,
		Category:      d.Category,
		BasePremium:   d.BasePremium,
		CoverageLimit: d.CoverageLimit,
		MinThreshold:  d.MinThreshold,
		WaitingMonths: d.WaitingMonths,
		Status:        core.Status(d.Status),
		Description:   d.Description,
	}
}

type GuaranteeDoc struct {
	ID            int64  `bson:"_id"`
	ProductID     int64  `bson:"product_id"`
	Code          string `bson:"code"`
	Name          string `bson:"name"`
	WaitingMonths *int   `bson:"waiting_months,omitempty"`
	Status        string `bson:"status"`
	Description   string `bson:"description,omitempty"`
}

func fromGuaranteeDoc(d GuaranteeDoc) core.Guarantee {
	return core.Guarantee{
		ID:            d.ID,
		ProductID:     d.ProductID,
		Code:          d.Code,
		Name:          d.Name,
		WaitingMonths: d.WaitingMonths,
		Status:        core.Status(d.Status),
		Description:   d.Description,
	}
}

type ContractDoc struct {
	ID            int64     `bson:"_id"`
	Reference     string    `bson:"reference"`
	CustomerID    int64     `bson:"customer_id"`
	BrokerID      int64     `bson:"broker_id"`
	ProductID     int64     `bson:"product_id"`
	StartDate     time.Time `bson:"start_date"`
	EndDate       time.Time `bson:"end_date"`
	Status        string    `bson:"status"`
	VehiclesCount int       `bson:"vehicles_count"`
	PayFrequency  string    `bson:"pay_frequency"`
	TotalPremium  float64   `bson:"total_premium"`
	AutoRenewal   bool      `bson:"auto_renewal"`
	Notes         string    `bson:"notes,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toContractDoc(c core.Contract) ContractDoc {
	return ContractDoc{
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

func fromContractDoc(d ContractDoc) core.Contract {
	return core.Contract{
		ID:            d.ID,
		Reference:     d.Reference,
		CustomerID:    d.CustomerID,
		BrokerID:      d.BrokerID,
		ProductID:     d.ProductID,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Status:        core.Status(d.Status),
		VehiclesCount: d.VehiclesCount,
		PayFrequency:  core.PayFrequency(d.PayFrequency),
		TotalPremium:  d.TotalPremium,
		AutoRenewal:   d.AutoRenewal,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type ClaimDoc struct {
	ID               int64     `bson:"_id"`
	Reference        string    `bson:"reference"`
	FileReference    string    `bson:"file_reference"`
	ContractID       int64     `bson:"contract_id"`
	GuaranteeCode    string    `bson:"guarantee_code"`
	CircumstanceCode string    `bson:"circumstance_code,omitempty"`
	DeclarationDate  time.Time `bson:"declaration_date"`
	IncidentDate     time.Time `bson:"incident_date,omitempty"`
	ClaimedAmount    float64   `bson:"claimed_amount"`
	ApprovedAmount   float64   `bson:"approved_amount"`
	Description      string    `bson:"description,omitempty"`
	Status           string    `bson:"status"`
	Resolution       string    `bson:"resolution,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
}

func toClaimDoc(c core.Claim) ClaimDoc {
	return ClaimDoc{
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

func fromClaimDoc(d ClaimDoc) core.Claim {
	return core.Claim{
		ID:               d.ID,
		Reference:        d.Reference,
		FileReference:    d.FileReference,
		ContractID:       d.ContractID,
		GuaranteeCode:    d.GuaranteeCode,
		CircumstanceCode: d.CircumstanceCode,
		DeclarationDate:  d.DeclarationDate,
		IncidentDate:     d.IncidentDate,
		ClaimedAmount:    d.ClaimedAmount,
		ApprovedAmount:   d.ApprovedAmount,
		Description:      d.Description,
		Status:           core.ClaimStatus(d.Status),
		Resolution:       core.ResolutionType(d.Resolution),
		CreatedAt:        d.CreatedAt,
	}
}
