package entities

import "time"

// Department представляет запись справочника подразделений.
type Department struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedBy *string    `json:"created_by,omitempty"`
	DeletedBy *string    `json:"deleted_by,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
