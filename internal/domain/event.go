package domain

import "time"

// EventType classifies club activities.
type EventType string

const (
	EventBloodDonation    EventType = "blood_donation"
	EventFirstAidTraining EventType = "first_aid_training"
	EventAwareness        EventType = "awareness_campaign"
	EventDisasterResponse EventType = "disaster_response"
	EventFundraising      EventType = "fundraising"
	EventCommunityService EventType = "community_service"
	EventMeeting          EventType = "meeting"
	EventOther            EventType = "other"
)

// EventStatus tracks the lifecycle of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Event is a scheduled club activity.
type Event struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Type            EventType   `json:"type"`
	Status          EventStatus `json:"status"`
	StartDate       time.Time   `json:"startDate"`
	EndDate         *time.Time  `json:"endDate,omitempty"`
	Location        string      `json:"location"`
	Branch          string      `json:"branch,omitempty"`
	MaxParticipants int         `json:"maxParticipants,omitempty"`
	Participants    []string    `json:"participants,omitempty"`
	CreatedBy       *UserRef    `json:"createdBy,omitempty"`
}

// IsFull reports whether the participant cap is reached.
func (e Event) IsFull() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

// HasParticipant reports whether userID is registered.
func (e Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// EventFilter narrows the events collection.
type EventFilter struct {
	Type   EventType   `json:"type,omitempty"`
	Status EventStatus `json:"status,omitempty"`
	Branch string      `json:"branch,omitempty"`
	Search string      `json:"search,omitempty"`
}

// Query renders the filter as backend query parameters.
func (f EventFilter) Query() map[string]string {
	q := map[string]string{}
	setIf(q, "type", string(f.Type))
	setIf(q, "status", string(f.Status))
	setIf(q, "branch", f.Branch)
	setIf(q, "search", f.Search)
	return q
}

// EventInput is the create/update payload.
type EventInput struct {
	Title           string      `json:"title,omitempty"`
	Description     string      `json:"description,omitempty"`
	Type            EventType   `json:"type,omitempty"`
	Status          EventStatus `json:"status,omitempty"`
	StartDate       *time.Time  `json:"startDate,omitempty"`
	EndDate         *time.Time  `json:"endDate,omitempty"`
	Location        string      `json:"location,omitempty"`
	Branch          string      `json:"branch,omitempty"`
	MaxParticipants int         `json:"maxParticipants,omitempty"`
}

// Feedback is submitted after attending an event.
type Feedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
