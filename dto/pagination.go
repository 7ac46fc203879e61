package dto

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageQuery carries the page/limit query parameters shared by every paginated list
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// Pagination is a normalised page request
type Pagination struct {
	Page  int
	Limit int
}

// Normalize applies the defaults and rejects non-positive values
func (q PageQuery) Normalize() (Pagination, error) {
	p := Pagination{Page: q.Page, Limit: q.Limit}
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Page < 1 {
		return Pagination{}, invalid("page", "must be at least 1")
	}
	if p.Limit < 1 {
		return Pagination{}, invalid("limit", "must be at least 1")
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return Pagination{}, invalid("page", "is out of range for this limit")
	}
	return p, nil
}

// Offset is the number of rows skipped before this page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata echoed back with every list
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta computes totalPages = ceil(total / limit)
func NewMeta(p Pagination, total int64) Meta {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit > 0 {
		totalPages++
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Envelope wraps a page of results with its metadata
type Envelope[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// NewEnvelope never returns a nil data slice so the JSON is always an array
func NewEnvelope[T any](data []T, p Pagination, total int64) Envelope[T] {
	if data == nil {
		data = []T{}
	}
	return Envelope[T]{Data: data, Meta: NewMeta(p, total)}
}
