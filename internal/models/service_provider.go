package models

import (
	"strings"
	"time"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// ServiceProvider represents a service-provider company profile.
type ServiceProvider struct {
	ID                   int64     `json:"id"`
	OwnerID              string    `json:"ownerId"`
	Slug                 string    `json:"slug"`
	CompanyName          string    `json:"companyName"`
	CompanyWebsite       string    `json:"companyWebsite,omitempty"`
	LogoURL              string    `json:"logoUrl,omitempty"`
	NumEmployees         int       `json:"numEmployees"`
	AreaOfSpecialization string    `json:"areaOfSpecialization"`
	CategoryOfService    []string  `json:"categoryOfService"`
	BrokerServiceTypes   []string  `json:"brokerServiceTypes,omitempty"`
	MarketsCovered       []string  `json:"marketsCovered,omitempty"`
	CustomersCovered     string    `json:"customersCovered,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ServiceProviderRequest is the onboarding/edit form submission for a
// service provider. type_of_broker_service and markets_covered are
// conditionally required on the category selection and cleared from the
// payload when their trigger is absent.
type ServiceProviderRequest struct {
	CompanyName          string   `json:"company_name" binding:"required,max=200"`
	CompanyWebsite       string   `json:"company_website" binding:"omitempty,website,max=500"`
	Logo                 *Upload  `json:"logo" binding:"omitempty"`
	NumEmployees         FlexInt  `json:"num_employees"`
	AreaOfSpecialization string   `json:"area_of_specialization" binding:"required,max=5000"`
	CategoryOfService    []string `json:"category_of_service" binding:"required,min=1,dive,categorytext"`
	BrokerServiceTypes   []string `json:"type_of_broker_service" binding:"omitempty,dive,max=100"`
	MarketsCovered       []string `json:"markets_covered" binding:"omitempty,dive,max=100"`
	CustomersCovered     string   `json:"customers_covered" binding:"omitempty,max=5000"`

	// References the server-side form session holding the submit latch.
	FormSessionID string `json:"form_session_id" binding:"omitempty,max=100"`
}

// RequiresBrokerTypes reports whether the Broker category is selected.
func (r *ServiceProviderRequest) RequiresBrokerTypes() bool {
	return containsAny(r.CategoryOfService, []string{"Broker"})
}

// RequiresMarkets reports whether any markets-covered trigger category is
// selected.
func (r *ServiceProviderRequest) RequiresMarkets() bool {
	return containsAny(r.CategoryOfService, MarketsCoveredTriggers)
}

// Validate layers the conditional sub-field rules and numeric coercion on
// top of the binding tags. Errors accumulate across fields.
func (r *ServiceProviderRequest) Validate() validation.Errors {
	var errs validation.Errors

	errs = r.NumEmployees.CheckRange(errs, "num_employees", 1, 1000000)

	if r.Logo.Present() && !r.Logo.IsImage() {
		errs = errs.Add("logo", "must be a png or jpeg image")
	}

	if r.RequiresBrokerTypes() && len(r.BrokerServiceTypes) == 0 {
		errs = errs.Add("type_of_broker_service", "select at least one broker service type")
	}

	if r.RequiresMarkets() && len(r.MarketsCovered) == 0 {
		errs = errs.Add("markets_covered", "select at least one market")
	}

	return errs
}

// Normalize trims free text, prefixes URLs and clears conditional sub-fields
// whose trigger category is absent, so stale selections are never submitted.
func (r *ServiceProviderRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.AreaOfSpecialization = strings.TrimSpace(r.AreaOfSpecialization)
	r.CustomersCovered = strings.TrimSpace(r.CustomersCovered)
	if r.CompanyWebsite != "" {
		r.CompanyWebsite = validation.NormalizeURL(r.CompanyWebsite)
	}

	if !r.RequiresBrokerTypes() {
		r.BrokerServiceTypes = nil
	}
	if !r.RequiresMarkets() {
		r.MarketsCovered = nil
	}
}

// ServiceProviderResponse is the create/update result returned to the client.
type ServiceProviderResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	ProviderID int64  `json:"providerId,omitempty"`
	Slug       string `json:"slug,omitempty"`
	Error      string `json:"error,omitempty"`
}
