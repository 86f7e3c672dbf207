package domain

import "time"

// Announcement is a club notice that members can like and comment on.
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Author      *UserRef  `json:"author,omitempty"`
	Likes       []string  `json:"likes,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikedBy reports whether userID has liked the announcement.
func (a Announcement) LikedBy(userID string) bool {
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is one reply under an announcement.
type Comment struct {
	ID        string    `json:"id"`
	User      *UserRef  `json:"user,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnnouncementFilter narrows the announcements collection.
type AnnouncementFilter struct {
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Query renders the filter as backend query parameters.
func (f AnnouncementFilter) Query() map[string]string {
	q := map[string]string{}
	setIf(q, "category", f.Category)
	setIf(q, "priority", f.Priority)
	setIf(q, "search", f.Search)
	return q
}

// AnnouncementInput is the create/update payload.
type AnnouncementInput struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
	IsPublished *bool  `json:"isPublished,omitempty"`
}
