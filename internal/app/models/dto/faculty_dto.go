package dto

import "github.com/dcbcollege/noticeboard/internal/app/models"

// FacultyRequest carries the combined add/edit faculty form. A present
// FacultyID means edit. The profile image travels separately as a multipart
// file under the "profile_image" field.
type FacultyRequest struct {
	FacultyID         int64  `form:"faculty_id" json:"faculty_id"`
	Name              string `form:"name" json:"name"`
	Designation       string `form:"designation" json:"designation"`
	Department        string `form:"department" json:"department"`
	Qualification     string `form:"qualification" json:"qualification"`
	Specialization    string `form:"specialization" json:"specialization"`
	ExperienceYears   int    `form:"experience_years" json:"experience_years"`
	Email             string `form:"email" json:"email"`
	Phone             string `form:"phone" json:"phone"`
	DisplayOrder      int    `form:"display_order" json:"display_order"`
	Status            string `form:"status" json:"status"`
	Bio               string `form:"bio" json:"bio"`
	ResearchInterests string `form:"research_interests" json:"research_interests"`
	Publications      string `form:"publications" json:"publications"`
}

// DeleteFacultyRequest identifies the faculty member to remove.
type DeleteFacultyRequest struct {
	FacultyID int64 `form:"faculty_id" json:"faculty_id"`
}

// FacultyListResponse is the per-department listing body.
type FacultyListResponse struct {
	Success bool              `json:"success"`
	Faculty []*models.Faculty `json:"faculty"`
}

// FacultyDetailsResponse is the single-record body used for edit-form prefill.
type FacultyDetailsResponse struct {
	Success bool            `json:"success"`
	Faculty *models.Faculty `json:"faculty"`
}
