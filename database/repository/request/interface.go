package requestRepo

import (
	"context"
	"errors"

	"github.com/EternalGerms/trampoaqui-sub001/models"
)

// ErrVersionConflict is returned by ReplaceVersioned when the stored document
// moved past the version the caller read.
var ErrVersionConflict = errors.New("service request version conflict")

// ErrNotFound is returned when no request matches the given ID.
var ErrNotFound = errors.New("service request not found")

// ServiceRequestRepository defines data access for service requests. A
// request document embeds its negotiation ledger and daily sessions, so every
// mutation is a single-document write.
type ServiceRequestRepository interface {
	// Create inserts a new request record.
	Create(ctx context.Context, req *models.ServiceRequest) error
	// GetByID retrieves a request by its unique ID.
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// ListByClient retrieves a client's requests, newest first.
	ListByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error)
	// ListByProvider retrieves a provider's requests, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.ServiceRequest, error)
	// ReplaceVersioned persists the full document iff the stored version
	// still equals req.Version, bumping version and updatedAt. Returns
	// ErrVersionConflict if a concurrent writer got there first.
	ReplaceVersioned(ctx context.Context, req *models.ServiceRequest) error
}
