package contact

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/leadbridge/backend/internal/domain/crm"
)

// ImageFetcher downloads an image and returns it base64 encoded, or ""
// when the download fails.
type ImageFetcher interface {
	FetchBase64(ctx context.Context, url string) string
}

// CheckRequest identifies a person by name and/or email.
type CheckRequest struct {
	Name  string
	Email string
}

// CheckResult reports whether a matching person exists. ID is nil when
// no match was found.
type CheckResult struct {
	Exists bool
	ID     *int64
}

// ConnectionResult carries the outcome of a credential check.
type ConnectionResult struct {
	UID     int
	Message string
}

// UpsertRequest carries one scraped profile. Pointer fields distinguish
// "absent" from "empty": absent fields are left untouched on updates.
type UpsertRequest struct {
	Name                  string
	Company               *string
	JobPosition           *string
	Email                 *string
	Phone                 *string
	Website               *string
	City                  *string
	Tags                  *string
	Photo                 *string
	AdditionalInfo        *string
	ContactType           string
	CompanyPhoto          *string
	CompanyLinkedInURL    *string
	CompanyTags           *string
	CompanyAdditionalInfo *string
}

// UpsertResult reports the person and company record ids after an import.
// CompanyID is nil when the profile carried no company.
type UpsertResult struct {
	PersonID  int64
	CompanyID *int64
}

// Service orchestrates contact imports against the CRM. Every operation
// opens its own session from the request's credentials.
type Service struct {
	connector crm.Connector
	images    ImageFetcher
	tags      *TagResolver
	logger    *zap.Logger
}

// NewService creates a new contact service
func NewService(connector crm.Connector, images ImageFetcher, logger *zap.Logger) *Service {
	return &Service{
		connector: connector,
		images:    images,
		tags:      NewTagResolver(logger),
		logger:    logger.Named("contact"),
	}
}

// TestConnection validates the credentials against the CRM.
func (s *Service) TestConnection(ctx context.Context, creds crm.Credentials) (*ConnectionResult, error) {
	sess, uid, msg := s.connector.Connect(ctx, creds)
	if uid == 0 {
		return nil, &crm.AuthError{Message: msg}
	}
	defer sess.Close()
	return &ConnectionResult{UID: uid, Message: msg}, nil
}

// Check reports whether an individual matching the request's name or
// email already exists. With neither field set no search is performed and
// the contact is reported as absent.
func (s *Service) Check(ctx context.Context, creds crm.Credentials, req CheckRequest) (*CheckResult, error) {
	sess, uid, msg := s.connector.Connect(ctx, creds)
	if uid == 0 {
		return nil, &crm.AuthError{Message: msg}
	}
	defer sess.Close()

	domain := crm.BuildDomain(personConditions(req.Name, req.Email), false)
	id, found, err := crm.SearchFirst(ctx, sess, crm.ModelPartner, domain)
	if err != nil {
		s.logger.Error("Error checking contact", zap.Error(err))
		return nil, err
	}
	if !found {
		return &CheckResult{Exists: false}, nil
	}
	return &CheckResult{Exists: true, ID: &id}, nil
}

// Upsert imports one profile: the company is found or created first, then
// the person, then the person is linked to the company. The company link
// is always written in a separate call so Odoo's onchange handlers cannot
// overwrite the person's city.
func (s *Service) Upsert(ctx context.Context, creds crm.Credentials, req UpsertRequest) (*UpsertResult, error) {
	sess, uid, msg := s.connector.Connect(ctx, creds)
	if uid == 0 {
		return nil, &crm.AuthError{Message: msg}
	}
	defer sess.Close()

	var companyID *int64
	if company := strVal(req.Company); company != "" {
		id, err := s.upsertCompany(ctx, sess, req)
		if err != nil {
			s.logger.Error("Error importing company", zap.Error(err))
			return nil, err
		}
		companyID = &id
	}

	personID, err := s.upsertPerson(ctx, sess, req)
	if err != nil {
		s.logger.Error("Error importing contact", zap.Error(err))
		return nil, err
	}

	if companyID != nil {
		err = s.linkToCompany(ctx, sess, personID, *companyID)
		if err != nil {
			s.logger.Error("Error linking contact to company", zap.Error(err))
			return nil, err
		}
	}

	return &UpsertResult{PersonID: personID, CompanyID: companyID}, nil
}

// upsertCompany finds the company by case-insensitive name or creates it,
// and returns its id.
//
// The city field is handled asymmetrically on purpose. Updates never touch
// city: Odoo propagates a company's city to its child contacts, so writing
// it would erase the location of every person already attached. New
// companies are created with city explicitly false for the same reason.
func (s *Service) upsertCompany(ctx context.Context, sess crm.Session, req UpsertRequest) (int64, error) {
	name := strings.TrimSpace(*req.Company)

	domain := crm.BuildDomain([]crm.Condition{
		{Field: "name", Operator: crm.OpEqualsILike, Value: name},
	}, true)
	id, found, err := crm.SearchFirst(ctx, sess, crm.ModelPartner, domain)
	if err != nil {
		return 0, err
	}

	data := map[string]any{
		"name":       name,
		"is_company": true,
	}
	if req.CompanyLinkedInURL != nil {
		data["website"] = *req.CompanyLinkedInURL
	}
	if req.CompanyAdditionalInfo != nil {
		data["comment"] = *req.CompanyAdditionalInfo
	}
	if img := s.images.FetchBase64(ctx, strVal(req.CompanyPhoto)); img != "" {
		data["image_1920"] = img
	}
	tagIDs, err := s.tags.Resolve(ctx, sess, strVal(req.CompanyTags))
	if err != nil {
		return 0, err
	}
	if len(tagIDs) > 0 {
		data["category_id"] = crm.ReplaceTags(tagIDs)
	}

	if found {
		_, err = sess.ExecuteKw(ctx, crm.ModelPartner, crm.MethodWrite,
			[]any{[]any{id}, data}, nil)
		if err != nil {
			return 0, err
		}
		return id, nil
	}

	data["city"] = false
	result, err := sess.ExecuteKw(ctx, crm.ModelPartner, crm.MethodCreate, []any{data}, nil)
	if err != nil {
		return 0, err
	}
	return crm.RecordID(result)
}

// upsertPerson finds the person by name or email or creates them, and
// returns their id. The company link is not written here.
func (s *Service) upsertPerson(ctx context.Context, sess crm.Session, req UpsertRequest) (int64, error) {
	name := strings.TrimSpace(req.Name)

	domain := crm.BuildDomain(personConditions(name, strVal(req.Email)), false)
	id, found, err := crm.SearchFirst(ctx, sess, crm.ModelPartner, domain)
	if err != nil {
		return 0, err
	}

	data := map[string]any{
		"name":       name,
		"is_company": false,
	}
	if req.JobPosition != nil {
		data["function"] = *req.JobPosition
	}
	if req.Email != nil {
		data["email"] = *req.Email
	}
	if req.Phone != nil {
		data["phone"] = *req.Phone
	}
	if req.Website != nil {
		data["website"] = *req.Website
	}
	if req.City != nil {
		data["city"] = *req.City
	}
	if req.AdditionalInfo != nil {
		data["comment"] = *req.AdditionalInfo
	}
	if img := s.images.FetchBase64(ctx, strVal(req.Photo)); img != "" {
		data["image_1920"] = img
	}
	tagIDs, err := s.tags.Resolve(ctx, sess, strVal(req.Tags))
	if err != nil {
		return 0, err
	}
	if len(tagIDs) > 0 {
		data["category_id"] = crm.ReplaceTags(tagIDs)
	}

	if found {
		_, err = sess.ExecuteKw(ctx, crm.ModelPartner, crm.MethodWrite,
			[]any{[]any{id}, data}, nil)
		if err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := sess.ExecuteKw(ctx, crm.ModelPartner, crm.MethodCreate, []any{data}, nil)
	if err != nil {
		return 0, err
	}
	return crm.RecordID(result)
}

// linkToCompany sets parent_id on the person. Kept strictly after the
// person write so the onchange triggered by parent_id cannot clobber the
// city that write just set.
func (s *Service) linkToCompany(ctx context.Context, sess crm.Session, personID, companyID int64) error {
	_, err := sess.ExecuteKw(ctx, crm.ModelPartner, crm.MethodWrite,
		[]any{[]any{personID}, map[string]any{"parent_id": companyID}}, nil)
	return err
}

// personConditions builds the name/email match fragments for an
// individual search. Blank fields contribute no fragment.
func personConditions(name, email string) []crm.Condition {
	var conds []crm.Condition
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		conds = append(conds, crm.Condition{Field: "name", Operator: crm.OpEquals, Value: trimmed})
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		conds = append(conds, crm.Condition{Field: "email", Operator: crm.OpEquals, Value: trimmed})
	}
	return conds
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
