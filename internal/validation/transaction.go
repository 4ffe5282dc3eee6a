package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/request"
	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TypeIncome: true, model.TypeExpense: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - date: Must be in DD-MM-YYYY format
//   - type: Must be income or expense
//   - amount: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse(dates.CanonicalLayout, req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount < 0 {
		errors["amount"] = "amount cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse(dates.CanonicalLayout, *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Amount != nil && *req.Amount < 0 {
		errors["amount"] = "amount cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateImportRequest validates a CSV import request: the file content must
// be present, the date column mapped, and either a type/amount pair or at
// least one of the income/expense columns mapped.
func ValidateImportRequest(req request.ImportTransactionsRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.CSV) == "" {
		errors["csv"] = "csv content is required"
	}
	if strings.TrimSpace(req.Mapping.Date) == "" {
		errors["mapping.date"] = "date column mapping is required"
	}

	hasTypeAmount := req.Mapping.Type != "" && req.Mapping.Amount != ""
	hasSplitColumns := req.Mapping.Income != "" || req.Mapping.Expense != ""
	if !hasTypeAmount && !hasSplitColumns {
		errors["mapping"] = "map either type and amount columns, or income/expense columns"
	}

	switch req.DateOrder {
	case "", "dayFirst", "monthFirst":
	default:
		errors["dateOrder"] = fmt.Sprintf("invalid dateOrder: %s", req.DateOrder)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
