package review

import (
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Type string

const (
	TypeSelf    Type = "self"
	TypeManager Type = "manager"
	TypePeer    Type = "peer"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeSelf, TypeManager, TypePeer:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one assessment of an employee
type Review struct {
	ID         kernel.ReviewID `json:"id"`
	EmployeeID kernel.UserID   `json:"employee_id"`
	ReviewerID kernel.UserID   `json:"reviewer_id"`
	Type       Type            `json:"type"`
	Text       string          `json:"text"`
	Rating     int             `json:"rating"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Summary is the model's digest of the latest self and manager reviews
type Summary struct {
	Strengths      string `json:"Strengths"`
	Weaknesses     string `json:"Weaknesses"`
	Improvements   string `json:"Improvements"`
	ActionableStep string `json:"Actionable_step"`
	Comments       string `json:"Comments"`
}

type SummaryResponse struct {
	EmployeeID      kernel.UserID    `json:"employee_id"`
	Provider        string           `json:"provider"`
	SelfReviewID    *kernel.ReviewID `json:"self_review_id,omitempty"`
	ManagerReviewID *kernel.ReviewID `json:"manager_review_id,omitempty"`
	Summary         Summary          `json:"summary"`
}
