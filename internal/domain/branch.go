package domain

// Branch is a club chapter (campus or faculty).
type Branch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}
