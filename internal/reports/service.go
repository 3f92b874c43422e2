// Package reports computes ledger aggregates: balance, income/expense
// totals, month buckets for the chart, and the CSV export.
package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/fintrack/ledger/internal/domain"
)

// MovementReader is the read capability the aggregator needs from the ledger.
type MovementReader interface {
	ListMovements(ctx context.Context) ([]domain.Movement, error)
}

// Service implements report aggregation.
type Service struct {
	movements MovementReader
}

// NewService creates a new report service.
func NewService(movements MovementReader) *Service {
	return &Service{movements: movements}
}

// BuildReport reads the full movement set once and computes all aggregates.
func (s *Service) BuildReport(ctx context.Context) (*domain.Report, error) {
	movements, err := s.movements.ListMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	balance, income, expenses := Totals(movements)

	return &domain.Report{
		Movements:     movements,
		Balance:       balance,
		TotalIncome:   income,
		TotalExpenses: expenses,
		ByMonth:       GroupByMonth(movements),
	}, nil
}

// ExportCSV reads the full movement set and renders it as CSV.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	movements, err := s.movements.ListMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return MovementsCSV(movements)
}

// Totals computes the signed balance, total income (sum of positive
// amounts) and total expenses (sum of absolute negative amounts). Native
// float64 addition in input order; zero amounts contribute to neither
// total, so balance == income - expenses always holds.
func Totals(movements []domain.Movement) (balance, income, expenses float64) {
	for _, m := range movements {
		switch {
		case m.Amount > 0:
			income += m.Amount
		case m.Amount < 0:
			expenses += -m.Amount
		}
	}
	return income - expenses, income, expenses
}

// GroupByMonth buckets movements by calendar year+month. Labels are
// zero-padded "YYYY-MM" so lexicographic order, used for the chart axis,
// matches chronological order. Amounts >= 0 count as income, mirroring
// the dashboard grouping; a zero amount adds nothing either way.
func GroupByMonth(movements []domain.Movement) []domain.MonthBucket {
	grouped := make(map[string]*domain.MonthBucket)
	for _, m := range movements {
		label := m.Date.Format("2006-01")
		bucket, found := grouped[label]
		if !found {
			bucket = &domain.MonthBucket{Month: label}
			grouped[label] = bucket
		}
		if m.Amount >= 0 {
			bucket.Income += m.Amount
		} else {
			bucket.Expenses += -m.Amount
		}
	}

	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	buckets := make([]domain.MonthBucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, *grouped[label])
	}
	return buckets
}

// csvHeader matches the columns of the original dashboard download.
var csvHeader = []string{"Concepto", "Monto", "Fecha", "Usuario", "Tipo"}

// MovementsCSV renders movements as CSV in input order. Pure and
// deterministic: the same list always yields byte-identical output.
// Dates use the product's day/month/year display format.
func MovementsCSV(movements []domain.Movement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, m := range movements {
		record := []string{
			m.Concept,
			strconv.FormatFloat(m.Amount, 'f', -1, 64),
			m.Date.Format("02/01/2006"),
			m.User.Display(),
			m.TypeLabel(),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
