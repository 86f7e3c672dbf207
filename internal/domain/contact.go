package domain

import "time"

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactFilter narrows the contacts collection.
type ContactFilter struct {
	Unread bool   `json:"unread,omitempty"`
	Search string `json:"search,omitempty"`
}

// Query renders the filter as backend query parameters.
func (f ContactFilter) Query() map[string]string {
	q := map[string]string{}
	if f.Unread {
		q["isRead"] = "false"
	}
	setIf(q, "search", f.Search)
	return q
}

// ContactInput is the public submission payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
