package models

import "time"

// Department groups faculty members for listing pages.
type Department string

const (
	DepartmentArts            Department = "arts"
	DepartmentScience         Department = "science"
	DepartmentComputerScience Department = "computer_science"
)

// ValidDepartments lists the accepted department values.
var ValidDepartments = []Department{DepartmentArts, DepartmentScience, DepartmentComputerScience}

// IsValidDepartment reports whether d is an accepted department value.
func IsValidDepartment(d Department) bool {
	for _, v := range ValidDepartments {
		if v == d {
			return true
		}
	}
	return false
}

// Faculty is a staff profile in the faculty directory. The profile image is
// stored inline as a path; there is no separate file table for it.
type Faculty struct {
	ID                int64      `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Designation       string     `json:"designation" db:"designation"`
	Department        Department `json:"department" db:"department"`
	Qualification     string     `json:"qualification" db:"qualification"`
	Specialization    string     `json:"specialization" db:"specialization"`
	ExperienceYears   int        `json:"experienceYears" db:"experience_years"`
	Email             string     `json:"email" db:"email"`
	Phone             string     `json:"phone" db:"phone"`
	ProfileImage      string     `json:"profileImage" db:"profile_image"`
	Bio               string     `json:"bio" db:"bio"`
	ResearchInterests string     `json:"researchInterests" db:"research_interests"`
	Publications      string     `json:"publications" db:"publications"`
	DisplayOrder      int        `json:"displayOrder" db:"display_order"`
	Status            Status     `json:"status" db:"status"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}
