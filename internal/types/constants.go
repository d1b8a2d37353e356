package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// UK standard forms of contract and organization roles offered by the
// project details form. Persisted values come from these sets.
var (
	ContractForms = []string{
		"JCT Standard Building Contract",
		"JCT Design and Build Contract",
		"JCT Intermediate Building Contract",
		"JCT Minor Works Building Contract",
		"NEC3",
		"NEC4",
		"FIDIC Red Book",
		"FIDIC Yellow Book",
		"IChemE Red Book",
		"PPC2000",
		"Bespoke / Other",
	}

	OrganizationRoles = []string{
		"Employer",
		"Contractor",
		"Subcontractor",
		"Sub-subcontractor",
		"Consultant",
		"Supplier",
	}
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
