package service

import (
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/request"
	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/dates"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
	"github.com/pennyflow/Personal-Finance-Backend/internal/repository"
)

const maxDescriptionLen = 255

// ImportResult reports what happened to each row of an import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	// ZeroedAmounts counts rows whose amount failed to parse and was
	// defaulted to 0 rather than dropped. Kept for compatibility with the
	// historical import behavior; callers that care should validate upstream.
	ZeroedAmounts int `json:"zeroedAmounts"`
}

// ImportService turns a mapped CSV file into stored transactions.
//
// The date column's format (separator, day/month/year order) is inferred once
// from the whole column, then applied per row. Rows with an unmappable date
// are stored with the raw date string and excluded from aggregation later;
// rows missing required values are skipped outright.
type ImportService struct {
	transactionRepo *repository.TransactionRepository
}

// NewImportService creates a new ImportService with the provided repository dependency.
func NewImportService(transactionRepo *repository.TransactionRepository) *ImportService {
	return &ImportService{
		transactionRepo: transactionRepo,
	}
}

// ImportCSV parses, maps and stores the transactions of one CSV file. The
// whole batch is committed atomically: either every accepted row is stored or
// none is.
func (s *ImportService) ImportCSV(req request.ImportTransactionsRequest) (ImportResult, error) {
	header, records, err := parseCSV(req.CSV)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportTransactions, err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	dateIdx, ok := col[req.Mapping.Date]
	if !ok {
		return ImportResult{}, fmt.Errorf("%w: date column %q not in header", apperrors.ErrMissingColumnMapping, req.Mapping.Date)
	}

	formatter := inferDateFormat(records, dateIdx, req.DateOrder)

	field := func(rec []string, name string) string {
		idx, ok := col[name]
		if !ok || name == "" || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	hasTypeColumn := req.Mapping.Type != "" && req.Mapping.Amount != ""

	// Unmapped columns feed the additionalData sidecar when no dedicated
	// column is mapped for it.
	mapped := map[string]bool{
		req.Mapping.Date: true, req.Mapping.Description: true,
		req.Mapping.Type: true, req.Mapping.Amount: true,
		req.Mapping.Income: true, req.Mapping.Expense: true,
		req.Mapping.AdditionalData: true,
	}

	var result ImportResult
	now := time.Now().UTC()
	txns := make([]model.Transaction, 0, len(records))

	for _, rec := range records {
		rawDate := field(rec, req.Mapping.Date)
		if rawDate == "" {
			result.Skipped++
			continue
		}

		t := model.Transaction{
			ID:          uuid.NewString(),
			Description: truncate(field(rec, req.Mapping.Description), maxDescriptionLen),
			// Spread timestamps so insertion order survives bulk inserts.
			CreatedAt: now.Add(time.Duration(len(txns)) * time.Microsecond),
		}

		if hasTypeColumn {
			rawType := strings.ToLower(field(rec, req.Mapping.Type))
			if rawType != model.TypeIncome && rawType != model.TypeExpense {
				result.Skipped++
				continue
			}
			rawAmount := field(rec, req.Mapping.Amount)
			if rawAmount == "" {
				result.Skipped++
				continue
			}
			t.Type = rawType
			amount, parsed := parseAmount(rawAmount)
			if !parsed {
				result.ZeroedAmounts++
			}
			t.Amount = amount
		} else {
			income, incomeParsed := parseAmount(field(rec, req.Mapping.Income))
			expense, expenseParsed := parseAmount(field(rec, req.Mapping.Expense))
			if !incomeParsed && !expenseParsed {
				result.Skipped++
				continue
			}
			if income > 0 {
				t.Type = model.TypeIncome
				t.Amount = income
			} else {
				t.Type = model.TypeExpense
				t.Amount = expense
			}
		}

		if formatter != nil {
			if canonical, ok := formatter.Format(rawDate); ok {
				t.Date = canonical
			} else {
				t.Date = rawDate
			}
		} else {
			t.Date = rawDate
		}

		if req.Mapping.AdditionalData != "" {
			t.AdditionalData = field(rec, req.Mapping.AdditionalData)
		} else {
			t.AdditionalData = sidecarFromUnmapped(header, rec, mapped)
		}

		txns = append(txns, t)
	}

	if err := s.transactionRepo.CreateTransactions(txns); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportTransactions, err)
	}

	result.Imported = len(txns)
	return result, nil
}

func parseCSV(content string) (header []string, records [][]string, err error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("csv has no header row")
	}
	return rows[0], rows[1:], nil
}

// inferDateFormat builds the batch date formatter from every value in the
// date column. A nil return means no sample parsed at all; rows then keep
// their raw date and are excluded from aggregation downstream.
func inferDateFormat(records [][]string, dateIdx int, order string) *dates.Formatter {
	samples := make([]string, 0, len(records))
	for _, rec := range records {
		if dateIdx < len(rec) && strings.TrimSpace(rec[dateIdx]) != "" {
			samples = append(samples, rec[dateIdx])
		}
	}

	hint := dates.OrderAuto
	switch order {
	case "dayFirst":
		hint = dates.OrderDayFirst
	case "monthFirst":
		hint = dates.OrderMonthFirst
	}

	formatter, err := dates.InferFormat(samples, hint)
	if err != nil {
		log.Printf("date format inference failed, keeping raw dates: %v", err)
		return nil
	}
	return formatter
}

// parseAmount strips thousands separators and parses a non-negative amount.
// A present-but-unparseable value yields (0, false): the historical behavior
// is to default to 0 rather than reject the row.
func parseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func sidecarFromUnmapped(header, rec []string, mapped map[string]bool) string {
	parts := make([]string, 0)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || mapped[h] || i >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[i]); v != "" {
			parts = append(parts, fmt.Sprintf("%s:%s", h, v))
		}
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
