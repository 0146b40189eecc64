package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leadbridge/backend/internal/domain/campaign"
	"github.com/leadbridge/backend/internal/domain/shared"
	"github.com/leadbridge/backend/internal/infrastructure/persistence/models"
)

// GormCampaignRepository implements campaign.Repository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new campaign repository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// Save inserts the campaign, or replaces the stored row when the id exists
func (r *GormCampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	model, err := models.FromDomain(c)
	if err != nil {
		return fmt.Errorf("failed to encode campaign: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save campaign: %w", result.Error)
	}
	return nil
}

// FindByID returns the campaign with the given id
func (r *GormCampaignRepository) FindByID(ctx context.Context, id string) (*campaign.Campaign, error) {
	var model models.CampaignModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", result.Error)
	}
	return model.ToDomain()
}

// FindAll returns all campaigns, newest first
func (r *GormCampaignRepository) FindAll(ctx context.Context) ([]*campaign.Campaign, error) {
	var rows []models.CampaignModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", result.Error)
	}

	campaigns := make([]*campaign.Campaign, 0, len(rows))
	for i := range rows {
		c, err := rows[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode campaign %s: %w", rows[i].ID, err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

// Delete removes the campaign with the given id. Deleting a missing id
// is not an error.
func (r *GormCampaignRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.CampaignModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete campaign: %w", result.Error)
	}
	return nil
}

var _ campaign.Repository = (*GormCampaignRepository)(nil)
