package model

import "time"

// Transaction types. Every stored transaction is exactly one of the two;
// anything else is rejected at validation time.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single income or expense record.
// Used internally for aggregation and analysis.
//
// Date is stored in canonical "DD-MM-YYYY" form (the storage format produced
// by the import date normalizer). Amount is a non-negative, currency-agnostic
// magnitude; the direction of the cash flow is carried by Type.
//
// Category and CleanedDescription are optional enrichment fields added by the
// external categorizer. When present they supersede Description for grouping
// and labeling, but never change Amount/Type/Date semantics.
type Transaction struct {
	ID                 string    `json:"id"`
	Date               string    `json:"date"`
	Description        string    `json:"description,omitempty"`
	Type               string    `json:"type"`
	Amount             float64   `json:"amount"`
	AdditionalData     string    `json:"additionalData,omitempty"`
	Category           string    `json:"category,omitempty"`
	CleanedDescription string    `json:"cleanedDescription,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
}

// Label returns the grouping label for the transaction: the cleaned
// description when the categorizer has provided one, the raw description
// otherwise.
func (t Transaction) Label() string {
	if t.CleanedDescription != "" {
		return t.CleanedDescription
	}
	return t.Description
}
