package models

import "github.com/google/uuid"

// assignID gives a new record a random UUID unless the caller already chose one
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// AllModels lists every persisted model in foreign-key order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Task{},
		&Comment{},
		&ActivityLog{},
	}
}
