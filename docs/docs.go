// Package docs provides Swagger documentation for the legal protection API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Legal Protection API",
        "description": "Back-office API for legal protection insurance contracts and claims.\n\nWorkflow:\n1. **Products** - Browse the legal protection catalog and guarantees\n2. **Premiums** - Quote a premium for a product, vehicle count and payment frequency\n3. **Contracts** - Subscribe contracts and check guarantee coverage\n4. **Claims** - Validate and declare claims against active contracts\n5. **Dashboard** - Portfolio and claims statistics",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/pverdonck/go-legalprotect"
        },
        "license": {
            "name": "MIT"
        },
        "version": "1.0.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/products": {
            "get": {
                "tags": ["Products"],
                "summary": "List active products",
                "operationId": "listProducts",
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Product"}}
                    },
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/products/{product_code}": {
            "get": {
                "tags": ["Products"],
                "summary": "Get a product by code",
                "operationId": "getProduct",
                "parameters": [
                    {"name": "product_code", "in": "path", "required": true, "type": "string", "description": "Commercial product code (e.g. CLASSIC)"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/Product"}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/products/{product_code}/guarantees": {
            "get": {
                "tags": ["Products"],
                "summary": "List a product's guarantees",
                "description": "Returns the guarantees with their effective waiting periods resolved against the product default.",
                "operationId": "listGuarantees",
                "parameters": [
                    {"name": "product_code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"type": "array", "items": {"$ref": "#/definitions/Guarantee"}}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/premiums/calculate": {
            "post": {
                "tags": ["Premiums"],
                "summary": "Calculate a premium",
                "description": "Quotes a premium without creating a contract: base premium plus EUR 25 per vehicle, times the payment-frequency surcharge (monthly +5%, quarterly +2%).",
                "operationId": "calculatePremium",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PremiumRequest"}}
                ],
                "responses": {
                    "200": {"description": "Premium breakdown", "schema": {"$ref": "#/definitions/PremiumBreakdown"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ProblemDetails"}},
                    "404": {"description": "Unknown or inactive product", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/contracts": {
            "post": {
                "tags": ["Contracts"],
                "summary": "Subscribe a contract",
                "description": "Creates a one-year contract. The premium is recomputed server side; client premiums are ignored.",
                "operationId": "createContract",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContractInput"}}
                ],
                "responses": {
                    "201": {"description": "Contract created", "schema": {"$ref": "#/definitions/Contract"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ProblemDetails"}},
                    "404": {"description": "Unknown product", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            },
            "get": {
                "tags": ["Contracts"],
                "summary": "List contracts",
                "operationId": "listContracts",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "Filter by status code (ACT, EXP, ...)"},
                    {"name": "broker_id", "in": "query", "type": "integer", "description": "Filter by broker"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"type": "array", "items": {"$ref": "#/definitions/Contract"}}}
                }
            }
        },
        "/contracts/{contract_id}": {
            "get": {
                "tags": ["Contracts"],
                "summary": "Get a contract by id",
                "operationId": "getContract",
                "parameters": [
                    {"name": "contract_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/Contract"}},
                    "404": {"description": "Contract not found", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/contracts/reference/{reference}": {
            "get": {
                "tags": ["Contracts"],
                "summary": "Get a contract by DAS reference",
                "operationId": "getContractByReference",
                "parameters": [
                    {"name": "reference", "in": "path", "required": true, "type": "string", "description": "e.g. DAS-2025-00001-000123"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/Contract"}},
                    "404": {"description": "Contract not found", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/contracts/{contract_id}/coverage/{guarantee_code}": {
            "get": {
                "tags": ["Contracts"],
                "summary": "Check guarantee coverage",
                "description": "Evaluates whether the guarantee is covered by the contract's product and whether the waiting period has elapsed. Not-covered outcomes are 200 responses with is_covered=false.",
                "operationId": "checkCoverage",
                "parameters": [
                    {"name": "contract_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "guarantee_code", "in": "path", "required": true, "type": "string", "description": "TELEBIB2 guarantee code (e.g. CIV_RECOV)"},
                    {"name": "date", "in": "query", "type": "string", "format": "date", "description": "Reference date; defaults to today"}
                ],
                "responses": {
                    "200": {"description": "Coverage verdict", "schema": {"$ref": "#/definitions/CoverageVerdict"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/claims": {
            "post": {
                "tags": ["Claims"],
                "summary": "Declare a claim",
                "description": "Validates then registers a claim. Claims failing the business rules are rejected with the itemized violations.",
                "operationId": "declareClaim",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClaimInput"}}
                ],
                "responses": {
                    "201": {"description": "Claim declared", "schema": {"$ref": "#/definitions/Claim"}},
                    "400": {"description": "Malformed input", "schema": {"$ref": "#/definitions/ProblemDetails"}},
                    "422": {"description": "Business rule violations", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            },
            "get": {
                "tags": ["Claims"],
                "summary": "List claims",
                "operationId": "listClaims",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "Filter by status code (NEW, PRO, RES, CLO, REJ)"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"type": "array", "items": {"$ref": "#/definitions/Claim"}}}
                }
            }
        },
        "/claims/validate": {
            "post": {
                "tags": ["Claims"],
                "summary": "Validate a claim without declaring it",
                "description": "Dry-runs coverage, waiting period and amount rules. Always 200 for well-formed input; the verdict carries errors and warnings as data.",
                "operationId": "validateClaim",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClaimInput"}}
                ],
                "responses": {
                    "200": {"description": "Validation verdict", "schema": {"$ref": "#/definitions/ClaimValidation"}},
                    "400": {"description": "Malformed input", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/claims/{claim_id}": {
            "get": {
                "tags": ["Claims"],
                "summary": "Get a claim by id",
                "operationId": "getClaim",
                "parameters": [
                    {"name": "claim_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/Claim"}},
                    "404": {"description": "Claim not found", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/claims/reference/{reference}": {
            "get": {
                "tags": ["Claims"],
                "summary": "Get a claim by SIN reference",
                "operationId": "getClaimByReference",
                "parameters": [
                    {"name": "reference", "in": "path", "required": true, "type": "string", "description": "e.g. SIN-2025-000045"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/Claim"}},
                    "404": {"description": "Claim not found", "schema": {"$ref": "#/definitions/ProblemDetails"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Back-office dashboard statistics",
                "operationId": "getDashboard",
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/DashboardStats"}}
                }
            }
        }
    },
    "definitions": {
        "Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string", "example": "CLASSIC"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "base_premium": {"type": "number", "description": "Annual base premium in EUR"},
                "coverage_limit": {"type": "number", "example": 200000},
                "min_threshold": {"type": "number", "example": 350},
                "waiting_months": {"type": "integer"},
                "status": {"type": "string", "example": "ACT"},
                "description": {"type": "string"}
            }
        },
        "Guarantee": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "code": {"type": "string", "example": "CIV_RECOV"},
                "name": {"type": "string"},
                "waiting_months": {"type": "integer", "description": "Override; absent means product default"},
                "effective_waiting_months": {"type": "integer"},
                "status": {"type": "string", "example": "ACT"}
            }
        },
        "PremiumRequest": {
            "type": "object",
            "required": ["product_code"],
            "properties": {
                "product_code": {"type": "string", "example": "CLASSIC"},
                "vehicles_count": {"type": "integer", "minimum": 0, "maximum": 99},
                "pay_frequency": {"type": "string", "enum": ["M", "Q", "A"]}
            }
        },
        "PremiumBreakdown": {
            "type": "object",
            "properties": {
                "product_code": {"type": "string"},
                "product_name": {"type": "string"},
                "base_premium": {"type": "number"},
                "vehicles_count": {"type": "integer"},
                "vehicle_addon": {"type": "number"},
                "pay_frequency": {"type": "string"},
                "frequency_label": {"type": "string", "example": "Monthly"},
                "frequency_multiplier": {"type": "number", "example": 1.05},
                "total_premium": {"type": "number"},
                "final_premium": {"type": "number", "description": "Rounded to cents"}
            }
        },
        "ContractInput": {
            "type": "object",
            "required": ["customer_id", "broker_id", "product_code", "start_date"],
            "properties": {
                "customer_id": {"type": "integer"},
                "broker_id": {"type": "integer"},
                "product_code": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "vehicles_count": {"type": "integer"},
                "pay_frequency": {"type": "string", "enum": ["M", "Q", "A"]},
                "auto_renewal": {"type": "boolean"},
                "notes": {"type": "string"}
            }
        },
        "Contract": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "reference": {"type": "string", "example": "DAS-2025-00001-000123"},
                "customer_id": {"type": "integer"},
                "broker_id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "example": "ACT"},
                "vehicles_count": {"type": "integer"},
                "pay_frequency": {"type": "string"},
                "total_premium": {"type": "number"},
                "auto_renewal": {"type": "boolean"}
            }
        },
        "CoverageVerdict": {
            "type": "object",
            "properties": {
                "is_covered": {"type": "boolean"},
                "reason": {"type": "string"},
                "is_waiting_period_over": {"type": "boolean"},
                "waiting_months": {"type": "integer"},
                "waiting_end_date": {"type": "string", "format": "date-time"},
                "days_until_coverage": {"type": "integer"},
                "contract_reference": {"type": "string"},
                "product_code": {"type": "string"},
                "guarantee_code": {"type": "string"}
            }
        },
        "ClaimInput": {
            "type": "object",
            "required": ["contract_id", "guarantee_code", "claimed_amount"],
            "properties": {
                "contract_id": {"type": "integer"},
                "guarantee_code": {"type": "string", "example": "CIV_RECOV"},
                "circumstance_code": {"type": "string", "example": "CONTR_DISP"},
                "declaration_date": {"type": "string", "format": "date-time"},
                "incident_date": {"type": "string", "format": "date-time"},
                "claimed_amount": {"type": "number", "example": 1250.00},
                "description": {"type": "string"}
            }
        },
        "ClaimValidation": {
            "type": "object",
            "properties": {
                "is_valid": {"type": "boolean"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/RuleViolation"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/RuleViolation"}},
                "coverage": {"$ref": "#/definitions/CoverageVerdict"}
            }
        },
        "RuleViolation": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "BUS006"},
                "field": {"type": "string", "example": "claimed_amount"},
                "message": {"type": "string"}
            }
        },
        "Claim": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "reference": {"type": "string", "example": "SIN-2025-000045"},
                "file_reference": {"type": "string"},
                "contract_id": {"type": "integer"},
                "guarantee_code": {"type": "string"},
                "circumstance_code": {"type": "string"},
                "declaration_date": {"type": "string", "format": "date-time"},
                "incident_date": {"type": "string", "format": "date-time"},
                "claimed_amount": {"type": "number"},
                "approved_amount": {"type": "number"},
                "status": {"type": "string", "enum": ["NEW", "PRO", "RES", "CLO", "REJ"]},
                "resolution": {"type": "string", "enum": ["AMI", "LIT", "REJ"]}
            }
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "contracts": {"type": "object"},
                "claims": {"type": "object"},
                "revenue": {"type": "object"},
                "claims_by_status": {"type": "array", "items": {"type": "object"}},
                "top_products": {"type": "array", "items": {"type": "object"}},
                "recent_claims": {"type": "array", "items": {"$ref": "#/definitions/Claim"}},
                "amicable_rate": {"type": "integer", "example": 79},
                "amicable_rate_target": {"type": "number", "example": 79}
            }
        },
        "ProblemDetails": {
            "type": "object",
            "description": "RFC 7807 Problem Details",
            "properties": {
                "type": {"type": "string", "example": "about:blank"},
                "title": {"type": "string", "example": "Not Found"},
                "status": {"type": "integer", "example": 404},
                "detail": {"type": "string"},
                "violations": {"type": "array", "items": {"$ref": "#/definitions/RuleViolation"}}
            }
        }
    },
    "tags": [
        {"name": "Products", "description": "Legal protection product catalog"},
        {"name": "Premiums", "description": "Premium quoting"},
        {"name": "Contracts", "description": "Contract subscription and coverage checks"},
        {"name": "Claims", "description": "Claim validation and declaration"},
        {"name": "Dashboard", "description": "Portfolio statistics"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Legal Protection API",
	Description:      "Back-office API for legal protection insurance contracts and claims",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
