package dto

import (
	"strings"

	"github.com/taskforge-api/models"
)

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	OwnerID     string  `json:"ownerId" binding:"required"`
}

// Parse validates the request and maps it to a project
func (r CreateProjectRequest) Parse() (models.Project, error) {
	if strings.TrimSpace(r.Name) == "" {
		return models.Project{}, invalid("name", "must not be empty")
	}
	if strings.TrimSpace(r.OwnerID) == "" {
		return models.Project{}, invalid("ownerId", "must not be empty")
	}
	return models.Project{
		Name:        r.Name,
		Description: r.Description,
		OwnerID:     r.OwnerID,
	}, nil
}

// UpdateProjectRequest represents the request payload for updating an existing project
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	OwnerID     *string `json:"ownerId" binding:"omitempty,min=1"`
}

// Parse validates the request and returns the column changes it implies
func (r UpdateProjectRequest) Parse() (Changes, error) {
	changes := Changes{}
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return nil, invalid("name", "must not be empty")
		}
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.OwnerID != nil {
		if strings.TrimSpace(*r.OwnerID) == "" {
			return nil, invalid("ownerId", "must not be empty")
		}
		changes["owner_id"] = *r.OwnerID
	}
	return changes, nil
}

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	PageQuery
	OwnerID string `form:"ownerId"`
	// Days keeps projects updated within the last N days
	Days int `form:"days" binding:"omitempty,min=1"`
}

// ProjectQuery is a validated ProjectFilter
type ProjectQuery struct {
	Pagination
	OwnerID string
	Days    int
}

// Parse validates the filter
func (f ProjectFilter) Parse() (ProjectQuery, error) {
	page, err := f.PageQuery.Normalize()
	if err != nil {
		return ProjectQuery{}, err
	}
	if f.Days < 0 {
		return ProjectQuery{}, invalid("days", "must be at least 1")
	}
	return ProjectQuery{Pagination: page, OwnerID: f.OwnerID, Days: f.Days}, nil
}
