package domain

import "time"

// DonationType is the kind of contribution.
type DonationType string

const (
	DonationBlood    DonationType = "blood"
	DonationMoney    DonationType = "money"
	DonationMaterial DonationType = "material"
)

// DonationStatus tracks verification.
type DonationStatus string

const (
	DonationPending  DonationStatus = "pending"
	DonationVerified DonationStatus = "verified"
	DonationRejected DonationStatus = "rejected"
)

// Donation is one recorded contribution.
type Donation struct {
	ID           string         `json:"id"`
	Donor        *UserRef       `json:"donor,omitempty"`
	DonorName    string         `json:"donorName,omitempty"`
	Type         DonationType   `json:"type"`
	Amount       float64        `json:"amount,omitempty"`
	Quantity     int            `json:"quantity,omitempty"`
	Description  string         `json:"description,omitempty"`
	Status       DonationStatus `json:"status"`
	Branch       string         `json:"branch,omitempty"`
	DonationDate time.Time      `json:"donationDate"`
	VerifiedBy   *UserRef       `json:"verifiedBy,omitempty"`
}

// DonationFilter narrows the donations collection.
type DonationFilter struct {
	Type   DonationType   `json:"type,omitempty"`
	Status DonationStatus `json:"status,omitempty"`
	Branch string         `json:"branch,omitempty"`
	Search string         `json:"search,omitempty"`
}

// Query renders the filter as backend query parameters.
func (f DonationFilter) Query() map[string]string {
	q := map[string]string{}
	setIf(q, "type", string(f.Type))
	setIf(q, "status", string(f.Status))
	setIf(q, "branch", f.Branch)
	setIf(q, "search", f.Search)
	return q
}

// DonationInput is the create/update payload.
type DonationInput struct {
	Donor        string         `json:"donor,omitempty"`
	DonorName    string         `json:"donorName,omitempty"`
	Type         DonationType   `json:"type,omitempty"`
	Amount       float64        `json:"amount,omitempty"`
	Quantity     int            `json:"quantity,omitempty"`
	Description  string         `json:"description,omitempty"`
	Status       DonationStatus `json:"status,omitempty"`
	Branch       string         `json:"branch,omitempty"`
	DonationDate *time.Time     `json:"donationDate,omitempty"`
}

// DonationStats are the aggregates from GET /donations/stats.
type DonationStats struct {
	TotalDonations int            `json:"totalDonations"`
	TotalAmount    float64        `json:"totalAmount"`
	Pending        int            `json:"pending"`
	Verified       int            `json:"verified"`
	ByType         map[string]int `json:"byType,omitempty"`
}
