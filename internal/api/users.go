// Package api provides the built-in demo user accounts.
package api

import "github.com/claimpilot/claimpilot/internal/models"

// DemoUsers returns the hardcoded demo accounts with their policies. Real
// credential storage is out of scope; these mirror the legacy demo data.
func DemoUsers() []models.User {
	return []models.User{
		{
			Name:     "Demo User One",
			Email:    "demo1@company.com",
			Password: "demo123",
			Policies: []models.Policy{
				{
					PolicyNumber: "POL-2024-001",
					Type:         "Auto Insurance",
					Status:       "Active",
					Premium:      "$1,200/year",
					Coverage:     "Full Coverage",
					Vehicle:      "2020 Toyota Camry",
					ExpiryDate:   "2024-12-31",
				},
				{
					PolicyNumber: "POL-2024-002",
					Type:         "Home Insurance",
					Status:       "Active",
					Premium:      "$800/year",
					Coverage:     "Comprehensive",
					Property:     "123 Main St, City",
					ExpiryDate:   "2024-11-30",
				},
				{
					PolicyNumber: "POL-2026-003",
					Type:         "Bike Insurance",
					Status:       "Active",
					Premium:      "$120/year",
					Coverage:     "Comprehensive",
					Property:     "123 Main St, City",
					ExpiryDate:   "2026-12-31",
				},
			},
		},
		{
			Name:     "Demo User Two",
			Email:    "demo2@company.com",
			Password: "demo456",
			Policies: []models.Policy{
				{
					PolicyNumber: "POL-2024-003",
					Type:         "Auto Insurance",
					Status:       "Active",
					Premium:      "$1,500/year",
					Coverage:     "Full Coverage",
					Vehicle:      "2022 Honda Accord",
					ExpiryDate:   "2025-01-15",
				},
			},
		},
	}
}
