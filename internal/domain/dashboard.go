package domain

import "time"

// DashboardStats are the admin/officer aggregates.
type DashboardStats struct {
	TotalMembers        int     `json:"totalMembers"`
	TotalVolunteers     int     `json:"totalVolunteers"`
	PendingApprovals    int     `json:"pendingApprovals"`
	UpcomingEvents      int     `json:"upcomingEvents"`
	TotalEvents         int     `json:"totalEvents"`
	TotalDonations      int     `json:"totalDonations"`
	TotalDonationAmount float64 `json:"totalDonationAmount"`
	ActiveBranches      int     `json:"activeBranches"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	User        *UserRef  `json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PersonalDashboard summarises the signed-in member's own involvement.
type PersonalDashboard struct {
	EventsAttended     int     `json:"eventsAttended"`
	UpcomingRegistered []Event `json:"upcomingRegistered"`
	DonationCount      int     `json:"donationCount"`
	TotalDonated       float64 `json:"totalDonated"`
	VolunteerHours     float64 `json:"volunteerHours"`
}
