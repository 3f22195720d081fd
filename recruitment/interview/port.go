package interview

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, i *Interview) error

	Update(ctx context.Context, i *Interview) error

	GetByID(ctx context.Context, id kernel.InterviewID) (*Interview, error)

	// ListByApplication returns the interviews of an application, soonest first
	ListByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]Interview, error)
}
