package campaign

import "context"

// Repository persists campaigns.
type Repository interface {
	// Save inserts or replaces the campaign by id.
	Save(ctx context.Context, c *Campaign) error

	// FindByID returns the campaign or shared.ErrNotFound.
	FindByID(ctx context.Context, id string) (*Campaign, error)

	// FindAll returns all campaigns, newest creation timestamp first.
	FindAll(ctx context.Context) ([]*Campaign, error)

	// Delete removes the campaign; absent ids are not an error.
	Delete(ctx context.Context, id string) error
}
