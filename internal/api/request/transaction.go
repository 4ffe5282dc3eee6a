package request

// CreateTransactionRequest is the body for creating a single transaction.
// Date uses the canonical "DD-MM-YYYY" storage form.
type CreateTransactionRequest struct {
	Date           string  `json:"date"`
	Description    string  `json:"description"`
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	AdditionalData string  `json:"additionalData,omitempty"`
}

// UpdateTransactionRequest is the body for a partial transaction update.
// The enrichment fields are settable so the categorizer results can be
// written back through the same endpoint.
type UpdateTransactionRequest struct {
	Date               *string  `json:"date,omitempty"`
	Description        *string  `json:"description,omitempty"`
	Type               *string  `json:"type,omitempty"`
	Amount             *float64 `json:"amount,omitempty"`
	AdditionalData     *string  `json:"additionalData,omitempty"`
	Category           *string  `json:"category,omitempty"`
	CleanedDescription *string  `json:"cleanedDescription,omitempty"`
}
