package expense

import "fmt"

// Policy holds per-category item limits and the receipt threshold
type Policy struct {
	Limits               map[string]float64
	ReceiptRequiredAbove float64
}

// PolicyResult is the outcome of checking an expense against the policy
type PolicyResult struct {
	ExpenseID   string   `json:"expense_id"`
	IsCompliant bool     `json:"is_compliant"`
	Violations  []string `json:"violations"`
}

// Check lists every violation of the expense. Categories without a limit of
// their own fall back to the "other" limit; with no such limit they are
// unrestricted.
func (p Policy) Check(e *Expense) PolicyResult {
	violations := []string{}

	for _, it := range e.Items {
		category := NormalizeCategory(it.Category)
		limit, ok := p.Limits[category]
		if !ok {
			limit, ok = p.Limits[CategoryOther]
		}
		if ok && it.Amount > limit {
			violations = append(violations,
				fmt.Sprintf("%s item of %.2f exceeds the %.2f limit", category, it.Amount, limit))
		}
	}

	if p.ReceiptRequiredAbove > 0 && e.Total > p.ReceiptRequiredAbove && e.ReceiptURL == "" {
		violations = append(violations,
			fmt.Sprintf("receipt required for expenses above %.2f", p.ReceiptRequiredAbove))
	}

	return PolicyResult{
		ExpenseID:   e.ID.String(),
		IsCompliant: len(violations) == 0,
		Violations:  violations,
	}
}
