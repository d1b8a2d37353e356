package models

// Report holds the generated analysis for a project. The unique index on
// ProjectID enforces the one-report-per-project invariant; later saves
// update the existing row rather than accumulating history.
type Report struct {
	BaseModel

	ProjectID uint   `gorm:"not null;uniqueIndex"`
	Content   string `gorm:"not null"`
}
