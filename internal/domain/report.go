package domain

// MonthBucket holds the per-month income/expense sums for the report chart.
// Expenses are accumulated as absolute values.
type MonthBucket struct {
	Month    string  `json:"month"` // zero-padded "YYYY-MM", sorts chronologically
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Report is the computed aggregate over the full ledger.
// Balance always equals TotalIncome - TotalExpenses.
type Report struct {
	Movements     []Movement    `json:"movements"`
	Balance       float64       `json:"balance"`
	TotalIncome   float64       `json:"totalIncome"`
	TotalExpenses float64       `json:"totalExpenses"`
	ByMonth       []MonthBucket `json:"byMonth"`
}
