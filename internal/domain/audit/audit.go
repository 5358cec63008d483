package audit

import "time"

// Audit carries the who/when columns shared by every table. A row is
// soft-deleted when DeletedAt is set.
type Audit struct {
	CreatedBy  *string    `gorm:"column:created_by;size:255" json:"created_by,omitempty"`
	CreatedAt  *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	ModifiedBy *string    `gorm:"column:modified_by;size:255" json:"modified_by,omitempty"`
	ModifiedAt *time.Time `gorm:"column:modified_at;index" json:"modified_at,omitempty"`
	DeletedBy  *string    `gorm:"column:deleted_by;size:255" json:"deleted_by,omitempty"`
	DeletedAt  *time.Time `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (a Audit) IsDeleted() bool { return a.DeletedAt != nil }

// Created returns an Audit stamped as created by `by` at `at`.
func Created(by string, at time.Time) Audit {
	return Audit{CreatedBy: &by, CreatedAt: &at}
}
