package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
)

func pending(amount float64, category string) *Expense {
	return &Expense{
		ID:     "e1",
		UserID: "u1",
		Items:  []Item{{Category: category, Amount: amount, Description: "test"}},
		Total:  amount,
		Status: StatusPending,
	}
}

func TestExpense_Decisions(t *testing.T) {
	e := pending(50, "Food")
	assert.True(t, errx.IsCode(e.Approve("u1", ""), CodeSelfApproval))

	require.NoError(t, e.Approve("m1", "ok"))
	assert.Equal(t, StatusApproved, e.Status)
	require.NotNil(t, e.ApproverID)
	assert.EqualValues(t, "m1", *e.ApproverID)
	assert.NotNil(t, e.DecidedAt)

	assert.True(t, errx.IsCode(e.Approve("m1", ""), CodeNotPending))
	assert.True(t, errx.IsCode(e.Reject("m1", "late"), CodeNotPending))

	r := pending(50, "Food")
	assert.True(t, errx.IsCode(r.Reject("m1", "  "), CodeInvalidExpense))
	require.NoError(t, r.Reject("m1", "Invalid receipt"))
	assert.Equal(t, StatusRejected, r.Status)
	assert.Equal(t, "Invalid receipt", r.RejectReason)
}

func TestExpense_ReplaceItems(t *testing.T) {
	e := pending(50, "Food")
	items := []Item{{Category: "Food", Amount: 35}, {Category: "Travel", Amount: 25}}

	require.NoError(t, e.ReplaceItems(items, 60))
	assert.Equal(t, 60.0, e.Total)
	assert.Len(t, e.Items, 2)

	assert.True(t, errx.IsCode(e.ReplaceItems(items, 61), CodeInvalidExpense))
	assert.True(t, errx.IsCode(e.ReplaceItems(nil, 0), CodeInvalidExpense))
	assert.True(t, errx.IsCode(e.ReplaceItems([]Item{{Category: "", Amount: 5}}, 5), CodeInvalidExpense))
	assert.True(t, errx.IsCode(e.ReplaceItems([]Item{{Category: "Food", Amount: -5}}, -5), CodeInvalidExpense))

	e.Status = StatusApproved
	assert.True(t, errx.IsCode(e.ReplaceItems(items, 60), CodeNotPending))
}

func TestPolicy_Check(t *testing.T) {
	policy := Policy{
		Limits:               map[string]float64{"food": 50, "travel": 1000, "other": 100},
		ReceiptRequiredAbove: 75,
	}

	tests := []struct {
		name       string
		expense    *Expense
		violations int
	}{
		{"within limit", pending(30, "Food"), 0},
		{"over meal limit and no receipt", pending(80, "Food"), 2},
		{"unknown category uses other", pending(120, "Gifts"), 2},
		{"travel with receipt", func() *Expense {
			e := pending(400, "travel")
			e.ReceiptURL = "receipts/u1/e1.pdf"
			return e
		}(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Check(tt.expense)
			assert.Len(t, got.Violations, tt.violations, "%v", got.Violations)
			assert.Equal(t, tt.violations == 0, got.IsCompliant)
			assert.NotNil(t, got.Violations)
		})
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(
		[]StatusTotal{
			{Status: StatusPending, Count: 2, Amount: 150},
			{Status: StatusApproved, Count: 1, Amount: 200},
			{Status: StatusRejected, Count: 1, Amount: 20},
		},
		map[string]float64{"food": 170, "travel": 200},
	)

	assert.Equal(t, Summary{
		Count:         4,
		TotalExpenses: 370,
		TotalAmount:   200,
		Pending:       2,
		Approved:      1,
		Rejected:      1,
	}, report.Summary)
	assert.Equal(t, 200.0, report.CategoryBreakdown["travel"])

	empty := BuildReport(nil, nil)
	assert.NotNil(t, empty.CategoryBreakdown)
}
