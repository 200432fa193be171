package entities

import (
	"strings"
	"time"

	"visitlog/internal/visitors/domain/normalize"
)

// Audit хранит идентификаторы пользователей, выполнивших изменения записи.
type Audit struct {
	CreatedBy *string `json:"created_by,omitempty"`
	UpdatedBy *string `json:"updated_by,omitempty"`
	DeletedBy *string `json:"deleted_by,omitempty"`
}

// Visitor представляет запись о посещении.
type Visitor struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	DepartmentID string     `json:"department_id"`
	BirthDate    time.Time  `json:"birth_date"`
	Position     string     `json:"position"`
	Phone        string     `json:"phone"`
	EntryAt      time.Time  `json:"entry_datetime"`
	ExitAt       time.Time  `json:"exit_datetime"`
	Remarks      *string    `json:"remarks,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	Audit
}

// VisitorFields содержит изменяемые поля посетителя в том виде, как их ввел пользователь.
type VisitorFields struct {
	FullName     string
	DepartmentID string
	BirthDate    time.Time
	Position     string
	Phone        string
	EntryAt      time.Time
	ExitAt       time.Time
	Remarks      string
}

// NewVisitor строит посетителя с нормализованными полями.
func NewVisitor(fields VisitorFields) (*Visitor, error) {
	v := &Visitor{}
	if err := v.Apply(fields); err != nil {
		return nil, err
	}
	return v, nil
}

// Apply полностью заменяет изменяемые поля посетителя.
// При ошибке посетитель не меняется.
func (v *Visitor) Apply(fields VisitorFields) error {
	departmentID := strings.TrimSpace(fields.DepartmentID)
	if departmentID == "" {
		return ErrMissingDepartment
	}
	if !fields.EntryAt.Before(fields.ExitAt) {
		return ErrInvalidVisitPeriod
	}

	v.FullName = normalize.FullName(fields.FullName)
	v.DepartmentID = departmentID
	v.BirthDate = fields.BirthDate
	v.Position = normalize.Position(fields.Position)
	v.Phone = normalize.Digits(fields.Phone)
	v.EntryAt = fields.EntryAt
	v.ExitAt = fields.ExitAt
	v.Remarks = optional(fields.Remarks)
	return nil
}

// IsRetired сообщает, удалена ли запись.
func (v *Visitor) IsRetired() bool {
	return v.DeletedAt != nil
}

// DisplayPhone возвращает телефон в формате для отображения.
func (v *Visitor) DisplayPhone() string {
	return normalize.Phone(v.Phone)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
