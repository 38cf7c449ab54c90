package models

import "time"

// Model is implemented by every type stored in the history database.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error // checked before every write
}

// Repository is the CRUD surface of a SQLite-backed [Model] table.
//
// List criteria are column names mapped to the value to match; implementations document the keys they accept.
type Repository[T Model] interface {
	Create(model T) error
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error
	List(criteria map[string]any) ([]T, error)
}
