package dto

import (
	"strings"

	"github.com/taskforge-api/models"
)

// CreateUserRequest represents registration data
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// Parse validates the request and maps it to a user
func (r CreateUserRequest) Parse() (models.User, error) {
	if strings.TrimSpace(r.Email) == "" {
		return models.User{}, invalid("email", "must not be empty")
	}
	if len(r.Password) < 8 {
		return models.User{}, invalid("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(r.Name) == "" {
		return models.User{}, invalid("name", "must not be empty")
	}
	return models.User{Email: r.Email, Password: r.Password, Name: r.Name}, nil
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Name     *string `json:"name" binding:"omitempty,min=1"`
}

// Parse validates the request and returns the column changes it implies
func (r UpdateUserRequest) Parse() (Changes, error) {
	changes := Changes{}
	if r.Email != nil {
		if strings.TrimSpace(*r.Email) == "" {
			return nil, invalid("email", "must not be empty")
		}
		changes["email"] = *r.Email
	}
	if r.Password != nil {
		if len(*r.Password) < 8 {
			return nil, invalid("password", "must be at least 8 characters")
		}
		changes["password"] = *r.Password
	}
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return nil, invalid("name", "must not be empty")
		}
		changes["name"] = *r.Name
	}
	return changes, nil
}

// UserFilter narrows GET /users
type UserFilter struct {
	PageQuery
	Email string `form:"email"`
}

// UserQuery is a validated UserFilter
type UserQuery struct {
	Pagination
	Email string
}

// Parse validates the filter
func (f UserFilter) Parse() (UserQuery, error) {
	page, err := f.PageQuery.Normalize()
	if err != nil {
		return UserQuery{}, err
	}
	return UserQuery{Pagination: page, Email: f.Email}, nil
}
