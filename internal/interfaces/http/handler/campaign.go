package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	campaignapp "github.com/leadbridge/backend/internal/application/campaign"
	"github.com/leadbridge/backend/internal/domain/campaign"
	"github.com/leadbridge/backend/internal/domain/shared"
)

// CampaignHandler handles campaign CRUD against the local store
type CampaignHandler struct {
	BaseHandler
	campaignService *campaignapp.Service
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *campaignapp.Service) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// CampaignRequest is the body for creating or updating a campaign
type CampaignRequest struct {
	Name        string   `json:"name" binding:"required"`
	PersonTags  []string `json:"person_tags"`
	CompanyTags []string `json:"company_tags"`
}

// CampaignResponse is the wire form of a campaign. Tag lists are never
// null so the extension can iterate them without guards.
type CampaignResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PersonTags  []string  `json:"person_tags"`
	CompanyTags []string  `json:"company_tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeleteCampaignResponse confirms a campaign deletion
type DeleteCampaignResponse struct {
	Status     string `json:"status"`
	CampaignID string `json:"campaign_id"`
}

func toCampaignResponse(c *campaign.Campaign) CampaignResponse {
	resp := CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		PersonTags:  c.PersonTags,
		CompanyTags: c.CompanyTags,
		CreatedAt:   c.CreatedAt,
	}
	if resp.PersonTags == nil {
		resp.PersonTags = []string{}
	}
	if resp.CompanyTags == nil {
		resp.CompanyTags = []string{}
	}
	return resp
}

// Create stores a new campaign
func (h *CampaignHandler) Create(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	created, err := h.campaignService.Create(c.Request.Context(), campaignapp.Input{
		Name:        req.Name,
		PersonTags:  req.PersonTags,
		CompanyTags: req.CompanyTags,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCampaignResponse(created))
}

// List returns all campaigns, newest first
func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]CampaignResponse, 0, len(campaigns))
	for _, item := range campaigns {
		responses = append(responses, toCampaignResponse(item))
	}
	h.Success(c, responses)
}

// Update replaces the editable fields of an existing campaign
func (h *CampaignHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	updated, err := h.campaignService.Update(c.Request.Context(), id, campaignapp.Input{
		Name:        req.Name,
		PersonTags:  req.PersonTags,
		CompanyTags: req.CompanyTags,
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Campaign not found")
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCampaignResponse(updated))
}

// Delete removes a campaign. Unknown ids still return success.
func (h *CampaignHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.campaignService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, DeleteCampaignResponse{Status: "success", CampaignID: id})
}

// RegisterRoutes registers the campaign endpoints
func (h *CampaignHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/campaigns", h.Create)
	rg.GET("/campaigns", h.List)
	rg.PUT("/campaigns/:id", h.Update)
	rg.DELETE("/campaigns/:id", h.Delete)
}
