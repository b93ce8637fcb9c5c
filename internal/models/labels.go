package models

// Built-in label sets for the category/specialization selectors. Custom
// labels added through the "Other" flow live alongside these in the same
// selected set.

// WorkLocations are the accepted job work-location values.
var WorkLocations = []string{"Remote", "In-office", "Hybrid"}

// ScopesOfWork are the accepted job engagement scopes.
var ScopesOfWork = []string{"Project-based", "Ongoing"}

// ExperienceLevels are the accepted seniority labels.
var ExperienceLevels = []string{"Entry", "Mid-level", "Senior", "Executive"}

// Specializations are the built-in area-of-specialization labels for jobs
// and talent profiles.
var Specializations = []string{
	"Sales",
	"Marketing",
	"Supply Chain",
	"Operations",
	"Finance",
	"R&D",
	"Retail",
	"E-commerce",
}

// ServiceCategories are the built-in category-of-service labels for service
// providers.
var ServiceCategories = []string{
	"Broker",
	"Sales",
	"Merchandising",
	"Logistics",
	"Design",
	"Manufacturing",
	"Marketing",
}

// MarketsCoveredTriggers are the service categories whose selection makes
// markets_covered mandatory.
var MarketsCoveredTriggers = []string{"Broker", "Sales", "Merchandising"}

// BrokerServiceTypes are the accepted broker sub-service labels, required
// exactly when "Broker" is among the selected service categories.
var BrokerServiceTypes = []string{
	"Retail Broker",
	"Foodservice Broker",
	"Natural Channel Broker",
	"Export Broker",
}

func containsAny(selected, triggers []string) bool {
	for _, trigger := range triggers {
		for _, label := range selected {
			if label == trigger {
				return true
			}
		}
	}
	return false
}
