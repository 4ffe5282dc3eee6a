package request

// ColumnMapping maps CSV header names onto transaction fields. Date is always
// required. Either Type+Amount are mapped, or Income and/or Expense columns
// are mapped and the type is derived per row from which column carries a
// value.
type ColumnMapping struct {
	Date           string `json:"date"`
	Description    string `json:"description,omitempty"`
	Type           string `json:"type,omitempty"`
	Amount         string `json:"amount,omitempty"`
	Income         string `json:"income,omitempty"`
	Expense        string `json:"expense,omitempty"`
	AdditionalData string `json:"additionalData,omitempty"`
}

// ImportTransactionsRequest is the body for a CSV import. CSV is the raw file
// content including the header row. DateOrder optionally disambiguates
// day/month column order ("dayFirst" or "monthFirst"); when absent the order
// is inferred from the data, day-first on ties.
type ImportTransactionsRequest struct {
	CSV       string        `json:"csv"`
	Mapping   ColumnMapping `json:"mapping"`
	DateOrder string        `json:"dateOrder,omitempty"`
}
