package dto

import "github.com/taskforge-api/models"

// ActivityFilter narrows GET /activity
type ActivityFilter struct {
	PageQuery
	TaskID    string                `form:"taskId"`
	ProjectID string                `form:"projectId"`
	UserID    string                `form:"userId"`
	Action    models.ActivityAction `form:"action"`
	// Days keeps entries created within the last N days
	Days int `form:"days" binding:"omitempty,min=1"`
}

// ActivityQuery is a validated ActivityFilter
type ActivityQuery struct {
	Pagination
	TaskID    string
	ProjectID string
	UserID    string
	Action    models.ActivityAction
	Days      int
}

// Parse validates the filter
func (f ActivityFilter) Parse() (ActivityQuery, error) {
	page, err := f.PageQuery.Normalize()
	if err != nil {
		return ActivityQuery{}, err
	}
	if f.Days < 0 {
		return ActivityQuery{}, invalid("days", "must be at least 1")
	}
	return ActivityQuery{
		Pagination: page,
		TaskID:     f.TaskID,
		ProjectID:  f.ProjectID,
		UserID:     f.UserID,
		Action:     f.Action,
		Days:       f.Days,
	}, nil
}
