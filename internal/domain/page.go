package domain

import "strconv"

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 10
	// MaxLimit caps the page size sent to the backend.
	MaxLimit = 100
)

// PageQuery carries the pagination half of a list request.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit to sane values.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Values merges pagination with filter parameters.
func (q PageQuery) Values(filters map[string]string) map[string]string {
	q = q.Normalize()
	out := make(map[string]string, len(filters)+2)
	for k, v := range filters {
		out[k] = v
	}
	out["page"] = strconv.Itoa(q.Page)
	out["limit"] = strconv.Itoa(q.Limit)
	return out
}

// Page is one page of a backend collection.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PageMeta is derived navigation data for a Page.
type PageMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Meta calculates pagination metadata.
func (p Page[T]) Meta() PageMeta {
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	totalPages := p.Total / limit
	if p.Total%limit > 0 {
		totalPages++
	}
	return PageMeta{
		Page:       p.Page,
		Limit:      limit,
		Total:      p.Total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
