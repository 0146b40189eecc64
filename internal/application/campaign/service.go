package campaign

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/leadbridge/backend/internal/domain/campaign"
)

// Input carries the user-editable fields of a campaign.
type Input struct {
	Name        string
	PersonTags  []string
	CompanyTags []string
}

// Service manages campaign definitions in the local store. Updates are
// serialized with a mutex so concurrent edits of the same campaign cannot
// interleave their read-modify-write cycles.
type Service struct {
	repo   campaign.Repository
	mu     sync.Mutex
	logger *zap.Logger
}

// NewService creates a new campaign service
func NewService(repo campaign.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("campaign")}
}

// Create stores a new campaign with a fresh id.
func (s *Service) Create(ctx context.Context, input Input) (*campaign.Campaign, error) {
	c, err := campaign.NewCampaign(input.Name, input.PersonTags, input.CompanyTags)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save campaign", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// List returns all campaigns, newest first.
func (s *Service) List(ctx context.Context) ([]*campaign.Campaign, error) {
	return s.repo.FindAll(ctx)
}

// Update replaces the editable fields of an existing campaign. The id and
// creation time are preserved. Returns shared.ErrNotFound for unknown ids.
func (s *Service) Update(ctx context.Context, id string, input Input) (*campaign.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(input.Name, input.PersonTags, input.CompanyTags); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to update campaign", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// Delete removes the campaign with the given id. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
