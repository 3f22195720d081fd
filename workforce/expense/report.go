package expense

// StatusTotal aggregates the expenses in one status
type StatusTotal struct {
	Status Status  `db:"status"`
	Count  int     `db:"count"`
	Amount float64 `db:"amount"`
}

// Summary is the headline of an expense report. TotalExpenses sums every
// report regardless of status; TotalAmount sums approved ones only.
// Pending, Approved and Rejected are counts.
type Summary struct {
	Count         int     `json:"count"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalAmount   float64 `json:"total_amount"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
}

type Report struct {
	Summary           Summary            `json:"summary"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
}

// BuildReport folds per-status totals and the category breakdown into a report
func BuildReport(totals []StatusTotal, categories map[string]float64) *Report {
	r := &Report{CategoryBreakdown: map[string]float64{}}
	for _, t := range totals {
		r.Summary.Count += t.Count
		r.Summary.TotalExpenses += t.Amount
		switch t.Status {
		case StatusPending:
			r.Summary.Pending += t.Count
		case StatusApproved:
			r.Summary.Approved += t.Count
			r.Summary.TotalAmount += t.Amount
		case StatusRejected:
			r.Summary.Rejected += t.Count
		}
	}
	for category, amount := range categories {
		r.CategoryBreakdown[category] += amount
	}
	return r
}
