package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Scope narrows a query to a filter predicate
type Scope func(*gorm.DB) *gorm.DB

// Page is an offset/limit window
type Page struct {
	Offset int
	Limit  int
}

// findPage runs the bounded read and an independent count under the same predicate.
// The two reads are not taken from one snapshot.
func findPage[T any](ctx context.Context, db *gorm.DB, scope Scope, order string, page Page, preloads ...string) ([]T, int64, error) {
	var items []T
	var total int64

	query := db.WithContext(ctx).Scopes(scope)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.Order(order).Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	if err := db.WithContext(ctx).Model(new(T)).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func rowExists[T any](ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
