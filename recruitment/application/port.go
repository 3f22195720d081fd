package application

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type Repository interface {
	// Create creates a new application
	Create(ctx context.Context, application *Application) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// ExistsByJobAndCandidate checks if an application exists for a job and candidate
	ExistsByJobAndCandidate(ctx context.Context, jobID kernel.JobID, candidateID kernel.UserID) (bool, error)

	// List retrieves applications matching the filters, newest first
	List(ctx context.Context, req ListApplicationsRequest) (*kernel.Paginated[Application], error)
}
