package campaign

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leadbridge/backend/internal/domain/shared"
)

// Campaign is a named pair of tag filters the extension saves locally.
// It has no relation to CRM records; the id is an opaque token and the
// tag sets are always stored de-duplicated.
type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PersonTags  []string  `json:"person_tags"`
	CompanyTags []string  `json:"company_tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCampaign creates a campaign with a fresh id and creation timestamp.
func NewCampaign(name string, personTags, companyTags []string) (*Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Campaign name is required")
	}
	return &Campaign{
		ID:          uuid.NewString(),
		Name:        name,
		PersonTags:  DedupeTags(personTags),
		CompanyTags: DedupeTags(companyTags),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Update replaces the mutable fields. ID and CreatedAt never change.
func (c *Campaign) Update(name string, personTags, companyTags []string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Campaign name is required")
	}
	c.Name = name
	c.PersonTags = DedupeTags(personTags)
	c.CompanyTags = DedupeTags(companyTags)
	return nil
}

// DedupeTags removes duplicate tags, preserving first-occurrence order.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
