package directoryRepo

import (
	"context"
	"errors"

	"github.com/EternalGerms/trampoaqui-sub001/models"
)

// ErrNotFound is returned when a directory lookup misses.
var ErrNotFound = errors.New("directory record not found")

// UserDirectory resolves user IDs to display records. The collection is
// owned by the external identity service; this side only reads it.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ProviderDirectory resolves provider IDs to display records and pricing
// defaults, same ownership rules as UserDirectory.
type ProviderDirectory interface {
	GetProviderByID(ctx context.Context, id string) (*models.Provider, error)
}
