// Package crm simulates outbound CRM integration: field mapping, a mock
// connector with configurable latency and failure rate, and mock data
// enrichment. The mapper is real and tested; the network is make-believe
// on purpose, and its failures never touch a lead's stored score.
package crm

import (
	"boothlead_backend/internal/leads/repository"
	"boothlead_backend/internal/leads/scoring"
)

// Platform identifies a supported CRM target.
type Platform string

const (
	PlatformHubSpot    Platform = "hubspot"
	PlatformSalesforce Platform = "salesforce"
	PlatformSalesgent  Platform = "salesgent"
)

// Valid reports whether the platform is supported.
func (p Platform) Valid() bool {
	switch p {
	case PlatformHubSpot, PlatformSalesforce, PlatformSalesgent:
		return true
	}
	return false
}

// DisplayName returns the marketing name of the platform.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformHubSpot:
		return "HubSpot"
	case PlatformSalesforce:
		return "Salesforce"
	case PlatformSalesgent:
		return "Salesgent"
	}
	return string(p)
}

// FieldMapping documents how one of our fields lands in the target CRM.
type FieldMapping struct {
	Field    string `json:"field"`
	CRMField string `json:"crmField"`
	Required bool   `json:"required"`
}

// fieldNames maps our field identifiers to each platform's naming scheme.
// HubSpot uses lowercase, Salesforce PascalCase (custom fields suffixed
// __c), Salesgent snake_case.
var fieldNames = map[string][3]string{
	"firstName":       {"firstname", "FirstName", "first_name"},
	"lastName":        {"lastname", "LastName", "last_name"},
	"email":           {"email", "Email", "email"},
	"phone":           {"phone", "Phone", "phone"},
	"businessName":    {"company", "Company", "company"},
	"businessType":    {"lead_type", "Type", "business_type"},
	"address":         {"address", "Street", "address"},
	"city":            {"city", "City", "city"},
	"state":           {"state", "State", "state"},
	"zipCode":         {"zip", "PostalCode", "zip"},
	"leadScore":       {"lead_score", "Lead_Score__c", "lead_score"},
	"leadGrade":       {"lead_grade", "Lead_Grade__c", "lead_grade"},
	"engagementLevel": {"engagement_level", "Engagement_Level__c", "engagement_level"},
	"notes":           {"notes", "Description", "notes"},
}

// fieldOrder fixes the mapping table's display order.
var fieldOrder = []string{
	"firstName", "lastName", "email", "phone", "businessName", "businessType",
	"address", "city", "state", "zipCode", "leadScore", "leadGrade",
	"engagementLevel", "notes",
}

var requiredFields = map[string]bool{
	"firstName": true,
	"lastName":  true,
	"email":     true,
}

func platformIndex(p Platform) int {
	switch p {
	case PlatformSalesforce:
		return 1
	case PlatformSalesgent:
		return 2
	default:
		return 0
	}
}

// FieldMappings returns the field mapping table for a platform.
func FieldMappings(p Platform) []FieldMapping {
	idx := platformIndex(p)
	out := make([]FieldMapping, 0, len(fieldOrder))
	for _, field := range fieldOrder {
		out = append(out, FieldMapping{
			Field:    field,
			CRMField: fieldNames[field][idx],
			Required: requiredFields[field],
		})
	}
	return out
}

// MapLead flattens a stored lead into the outbound payload for a platform.
// The score fields come from a fresh scoring pass, not the cached columns,
// so the payload always reflects the lead's current input fields.
func MapLead(lead repository.Lead, p Platform) map[string]interface{} {
	idx := platformIndex(p)
	name := func(field string) string { return fieldNames[field][idx] }

	breakdown := scoring.Score(lead.Lead)

	payload := map[string]interface{}{
		name("firstName"):       lead.FirstName,
		name("leadScore"):       breakdown.Total,
		name("leadGrade"):       string(breakdown.Grade),
		name("engagementLevel"): string(breakdown.Tier),
	}

	putStr := func(field string, v *string) {
		if v != nil && *v != "" {
			payload[name(field)] = *v
		}
	}
	putStr("lastName", lead.LastName)
	putStr("email", lead.Email)
	putStr("phone", lead.Phone)
	putStr("businessName", lead.BusinessName)
	putStr("address", lead.Address)
	putStr("city", lead.City)
	putStr("state", lead.State)
	putStr("zipCode", lead.ZipCode)
	putStr("notes", lead.Notes)
	if lead.BusinessType != "" {
		payload[name("businessType")] = string(lead.BusinessType)
	}

	return payload
}
