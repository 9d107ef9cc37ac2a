package models

import "time"

type Employment string

const (
	FullEmployment    Employment = "full"
	PartEmployment    Employment = "part"
	ProjectEmployment Employment = "project"
	Probation         Employment = "probation"
)

type Experience string

const (
	NoExperience Experience = "noExperience"
	Between1and3 Experience = "between1And3"
	Between3and6 Experience = "between3And6"
	MoreThan6    Experience = "moreThan6"
)

// SearchFilters is a user's saved vacancy search preferences. Nil fields
// mean "not set"; the core treats an explicit null and an absent field
// identically. Metro is only meaningful when Remote is false.
type SearchFilters struct {
	UserID              int64 `gorm:"primaryKey"`
	Position            *string
	City                *string
	SalaryFrom          *int
	Remote              *bool
	Metro               *string
	FreshnessDays       *int
	Employment          *Employment
	Experience          *Experience
	OnlyDirectEmployers *bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
