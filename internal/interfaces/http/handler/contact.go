package handler

import (
	"github.com/gin-gonic/gin"

	contactapp "github.com/leadbridge/backend/internal/application/contact"
	"github.com/leadbridge/backend/internal/domain/crm"
)

// ContactHandler handles the Odoo-facing contact endpoints
type ContactHandler struct {
	BaseHandler
	contactService *contactapp.Service
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *contactapp.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// OdooCredentials carries the connection parameters sent with every
// request. The backend holds no Odoo state of its own.
type OdooCredentials struct {
	OdooServer string `json:"odoo_server" binding:"required,url"`
	OdooDBName string `json:"odoo_db_name" binding:"required"`
	Username   string `json:"username" binding:"required"`
	APIToken   string `json:"api_token" binding:"required"`
}

func (r OdooCredentials) toCredentials() crm.Credentials {
	return crm.Credentials{
		ServerURL: r.OdooServer,
		Database:  r.OdooDBName,
		Username:  r.Username,
		APIToken:  r.APIToken,
	}
}

// CheckContactRequest identifies a person by name and/or email
type CheckContactRequest struct {
	OdooCredentials
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateContactRequest carries one scraped profile
type CreateContactRequest struct {
	OdooCredentials
	Name                  string  `json:"name" binding:"required"`
	Company               *string `json:"company"`
	JobPosition           *string `json:"job_position"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	Website               *string `json:"website"`
	City                  *string `json:"city"`
	Tags                  *string `json:"tags"`
	Photo                 *string `json:"photo" binding:"omitempty,url"`
	AdditionalInfo        *string `json:"additional_info"`
	ContactType           string  `json:"contact_type" binding:"required"`
	CompanyPhoto          *string `json:"company_photo" binding:"omitempty,url"`
	CompanyLinkedInURL    *string `json:"company_linkedin_url"`
	CompanyTags           *string `json:"company_tags"`
	CompanyAdditionalInfo *string `json:"company_additional_info"`
}

// ConnectionResponse is the body for a successful credential check
type ConnectionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UID     int    `json:"uid"`
}

// CheckContactResponse reports whether a person exists. ID is null when
// no match was found.
type CheckContactResponse struct {
	Exists bool   `json:"exists"`
	ID     *int64 `json:"id"`
}

// CreateContactResponse reports the imported record ids. CompanyID is
// null when the profile carried no company.
type CreateContactResponse struct {
	Status    string `json:"status"`
	PersonID  int64  `json:"person_id"`
	CompanyID *int64 `json:"company_id"`
}

// TestConnection validates Odoo credentials
func (h *ContactHandler) TestConnection(c *gin.Context) {
	var req OdooCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.contactService.TestConnection(c.Request.Context(), req.toCredentials())
	if err != nil {
		h.HandleCRMError(c, err)
		return
	}

	h.Success(c, ConnectionResponse{Status: "success", Message: result.Message, UID: result.UID})
}

// CheckContact reports whether an individual already exists in Odoo
func (h *ContactHandler) CheckContact(c *gin.Context) {
	var req CheckContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.contactService.Check(c.Request.Context(), req.toCredentials(),
		contactapp.CheckRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		h.HandleCRMError(c, err)
		return
	}

	h.Success(c, CheckContactResponse{Exists: result.Exists, ID: result.ID})
}

// CreateContact imports a scraped profile into Odoo
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.contactService.Upsert(c.Request.Context(), req.toCredentials(), contactapp.UpsertRequest{
		Name:                  req.Name,
		Company:               req.Company,
		JobPosition:           req.JobPosition,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Website:               req.Website,
		City:                  req.City,
		Tags:                  req.Tags,
		Photo:                 req.Photo,
		AdditionalInfo:        req.AdditionalInfo,
		ContactType:           req.ContactType,
		CompanyPhoto:          req.CompanyPhoto,
		CompanyLinkedInURL:    req.CompanyLinkedInURL,
		CompanyTags:           req.CompanyTags,
		CompanyAdditionalInfo: req.CompanyAdditionalInfo,
	})
	if err != nil {
		h.HandleCRMError(c, err)
		return
	}

	h.Success(c, CreateContactResponse{
		Status:    "success",
		PersonID:  result.PersonID,
		CompanyID: result.CompanyID,
	})
}

// RegisterRoutes registers the contact endpoints
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/test_connection", h.TestConnection)
	rg.POST("/check_contact", h.CheckContact)
	rg.POST("/create_contact", h.CreateContact)
}
