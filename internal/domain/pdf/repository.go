package pdf

import (
	"context"
)

// ProfileRepository resolves the display data an invoice references by id.
// The engine treats the resolved fields as opaque display data.
type ProfileRepository interface {
	// GetBiller returns the issuing company's identity
	GetBiller(ctx context.Context) (*BillerInfo, error)

	// GetClient resolves a client id to its billing display data
	GetClient(ctx context.Context, clientID string) (*RecipientInfo, error)

	// GetProject resolves a project id to its display data
	GetProject(ctx context.Context, projectID string) (*ProjectInfo, error)
}
