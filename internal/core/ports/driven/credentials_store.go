package driven

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// CredentialsStore persists county subscriber logins locally. Optional:
// counties requiring registered access degrade to a graceful skip when no
// credentials are available.
type CredentialsStore interface {
	// Get returns the credentials for a county.
	// Returns domain.ErrNotFound when none are stored.
	Get(ctx context.Context, county string) (*domain.Credentials, error)

	// Save stores or replaces the credentials for a county.
	Save(ctx context.Context, creds domain.Credentials) error

	// Delete removes the credentials for a county.
	Delete(ctx context.Context, county string) error
}
