package models

import (
	"encoding/json"
	"time"

	"github.com/leadbridge/backend/internal/domain/campaign"
)

// CampaignModel is the GORM representation of a campaign. Tag lists are
// stored as JSON text columns since SQLite has no native array type.
type CampaignModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:255;not null"`
	PersonTags  string    `gorm:"type:text"`
	CompanyTags string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides the default table name
func (CampaignModel) TableName() string {
	return "campaigns"
}

// FromDomain converts a domain campaign to its persistence model
func FromDomain(c *campaign.Campaign) (*CampaignModel, error) {
	personTags, err := json.Marshal(c.PersonTags)
	if err != nil {
		return nil, err
	}
	companyTags, err := json.Marshal(c.CompanyTags)
	if err != nil {
		return nil, err
	}
	return &CampaignModel{
		ID:          c.ID,
		Name:        c.Name,
		PersonTags:  string(personTags),
		CompanyTags: string(companyTags),
		CreatedAt:   c.CreatedAt,
	}, nil
}

// ToDomain converts a persistence model back to a domain campaign
func (m *CampaignModel) ToDomain() (*campaign.Campaign, error) {
	c := &campaign.Campaign{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if m.PersonTags != "" {
		if err := json.Unmarshal([]byte(m.PersonTags), &c.PersonTags); err != nil {
			return nil, err
		}
	}
	if m.CompanyTags != "" {
		if err := json.Unmarshal([]byte(m.CompanyTags), &c.CompanyTags); err != nil {
			return nil, err
		}
	}
	return c, nil
}
