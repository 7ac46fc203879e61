package dto

import (
	"strings"

	"github.com/taskforge-api/models"
	"github.com/taskforge-api/utils"
)

// CreateCommentRequest represents the request payload for creating a comment
type CreateCommentRequest struct {
	Content   string  `json:"content" binding:"required"`
	UserID    string  `json:"userId" binding:"required"`
	ProjectID *string `json:"projectId"`
	TaskID    *string `json:"taskId"`
}

// Parse validates the request and maps it to a comment
func (r CreateCommentRequest) Parse() (models.Comment, error) {
	if strings.TrimSpace(r.Content) == "" {
		return models.Comment{}, invalid("content", "must not be empty")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return models.Comment{}, invalid("userId", "must not be empty")
	}
	comment := models.Comment{Content: r.Content, UserID: r.UserID}
	if r.ProjectID != nil {
		comment.ProjectID = utils.NilIfEmpty(*r.ProjectID)
	}
	if r.TaskID != nil {
		comment.TaskID = utils.NilIfEmpty(*r.TaskID)
	}
	return comment, nil
}

// UpdateCommentRequest edits the text of a comment
type UpdateCommentRequest struct {
	Content *string `json:"content" binding:"omitempty,min=1"`
}

// Parse validates the request and returns the column changes it implies
func (r UpdateCommentRequest) Parse() (Changes, error) {
	changes := Changes{}
	if r.Content != nil {
		if strings.TrimSpace(*r.Content) == "" {
			return nil, invalid("content", "must not be empty")
		}
		changes["content"] = *r.Content
	}
	return changes, nil
}

// CommentFilter narrows GET /comments. The comment list is not paginated.
type CommentFilter struct {
	ProjectID string `form:"projectId"`
	TaskID    string `form:"taskId"`
}
