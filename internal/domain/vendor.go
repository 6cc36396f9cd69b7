package domain

import "time"

type Vendor struct {
	VendorID            string    `json:"vendor_id"`
	VendorName          string    `json:"vendor_name"`
	VendorType          string    `json:"vendor_type"`
	ContactName         string    `json:"contact_name"`
	ContactEmail        string    `json:"contact_email"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	CertificationStatus string    `json:"certification_status"`
	MinorityOwned       bool      `json:"minority_owned"`
	WomanOwned          bool      `json:"woman_owned"`
	SmallBusiness       bool      `json:"small_business"`
	LocalBusiness       bool      `json:"local_business"`
	Status              string    `json:"status"`
	PerformanceScore    float64   `json:"performance_score"`
	TotalContracts      int       `json:"total_contracts"`
	TotalAwarded        float64   `json:"total_awarded"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
