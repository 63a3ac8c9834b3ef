package services

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dcbcollege/noticeboard/internal/app/models"
	"github.com/dcbcollege/noticeboard/internal/app/models/dto"
	"github.com/dcbcollege/noticeboard/internal/app/repositories"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/filestorage"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
	"github.com/dcbcollege/noticeboard/internal/pkg/validation"
)

// facultyImageDir is the subdirectory for profile images under the storage root.
const facultyImageDir = "faculty"

// FacultyService manages the faculty directory.
type FacultyService interface {
	Save(ctx context.Context, req *dto.FacultyRequest, image *multipart.FileHeader) (*dto.MessageResponse, error)
	Delete(ctx context.Context, id int64) (*dto.MessageResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.FacultyDetailsResponse, error)
	ListByDepartment(ctx context.Context, department string, activeOnly bool) (*dto.FacultyListResponse, error)
}

// facultyStore is the data access surface the service needs.
type facultyStore interface {
	Create(ctx context.Context, f *models.Faculty) (int64, error)
	Update(ctx context.Context, f *models.Faculty, newImage bool) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	ListByDepartment(ctx context.Context, department models.Department, activeOnly bool) ([]*models.Faculty, error)
}

// imageStorage is the filesystem surface for profile images.
type imageStorage interface {
	EnsureSubDir(name string) (string, error)
	Store(fh *multipart.FileHeader, destPath string) error
	Exists(path string) bool
	Remove(path string) error
}

type facultyServiceImpl struct {
	faculty facultyStore
	storage imageStorage
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(faculty facultyStore, storage imageStorage) FacultyService {
	return &facultyServiceImpl{faculty: faculty, storage: storage}
}

// Save creates or updates a faculty profile. A present FacultyID means
// update. Without a fresh image upload an update keeps the stored image; with
// one, the old image file is removed after the row is rewritten.
func (s *facultyServiceImpl) Save(ctx context.Context, req *dto.FacultyRequest, image *multipart.FileHeader) (*dto.MessageResponse, error) {
	f, err := buildFaculty(req)
	if err != nil {
		return nil, err
	}

	newImage := image != nil && image.Filename != ""
	if newImage {
		path, err := s.storeProfileImage(image, f.Name)
		if err != nil {
			return nil, err
		}
		f.ProfileImage = path
	}

	if f.ID == 0 {
		if _, err := s.faculty.Create(ctx, f); err != nil {
			if newImage {
				_ = s.storage.Remove(f.ProfileImage)
			}
			return nil, err
		}
		return dto.NewMessageResponse("Faculty member added successfully"), nil
	}

	var oldImage string
	if newImage {
		existing, err := s.faculty.GetByID(ctx, f.ID)
		if err != nil {
			_ = s.storage.Remove(f.ProfileImage)
			if errors.Is(err, repositories.ErrFacultyNotFound) {
				return nil, apperrors.ErrFacultyNotFound
			}
			return nil, err
		}
		oldImage = existing.ProfileImage
	}

	if err := s.faculty.Update(ctx, f, newImage); err != nil {
		if newImage {
			_ = s.storage.Remove(f.ProfileImage)
		}
		if errors.Is(err, repositories.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, err
	}

	if newImage && oldImage != "" && oldImage != f.ProfileImage {
		_ = s.storage.Remove(oldImage)
	}

	return dto.NewMessageResponse("Faculty member updated successfully"), nil
}

func (s *facultyServiceImpl) storeProfileImage(image *multipart.FileHeader, ownerName string) (string, error) {
	if err := filestorage.ValidateUpload(image, filestorage.ProfileImageProfile); err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}

	dir, err := s.storage.EnsureSubDir(facultyImageDir)
	if err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(image.Filename)), ".")
	destPath := filepath.Join(dir, filestorage.TimestampImageName(ownerName, ext))

	if err := s.storage.Store(image, destPath); err != nil {
		logger.Error().Err(err).Str("file", image.Filename).Msg("Failed to store profile image")
		return "", errors.New("failed to save profile image")
	}

	return destPath, nil
}

func buildFaculty(req *dto.FacultyRequest) (*models.Faculty, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Name is required")
	}

	department := models.Department(req.Department)
	if !models.IsValidDepartment(department) {
		return nil, apperrors.NewValidationError("Invalid department: " + req.Department)
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}

	if req.ExperienceYears < 0 {
		return nil, apperrors.NewValidationError("Experience years cannot be negative")
	}

	status := models.Status(req.Status)
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, apperrors.NewValidationError("Invalid status: " + req.Status)
	}

	return &models.Faculty{
		ID:                req.FacultyID,
		Name:              name,
		Designation:       strings.TrimSpace(req.Designation),
		Department:        department,
		Qualification:     strings.TrimSpace(req.Qualification),
		Specialization:    strings.TrimSpace(req.Specialization),
		ExperienceYears:   req.ExperienceYears,
		Email:             email,
		Phone:             strings.TrimSpace(req.Phone),
		DisplayOrder:      req.DisplayOrder,
		Status:            status,
		Bio:               strings.TrimSpace(req.Bio),
		ResearchInterests: strings.TrimSpace(req.ResearchInterests),
		Publications:      strings.TrimSpace(req.Publications),
	}, nil
}

// Delete removes the row first and then the image file best-effort.
func (s *facultyServiceImpl) Delete(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid faculty ID")
	}

	existing, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, err
	}

	if err := s.faculty.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, err
	}

	if existing.ProfileImage != "" && s.storage.Exists(existing.ProfileImage) {
		_ = s.storage.Remove(existing.ProfileImage)
	}

	return dto.NewMessageResponse("Faculty member deleted successfully"), nil
}

// GetByID returns one full profile for edit-form prefill.
func (s *facultyServiceImpl) GetByID(ctx context.Context, id int64) (*dto.FacultyDetailsResponse, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Invalid faculty ID")
	}

	f, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, err
	}

	return &dto.FacultyDetailsResponse{Success: true, Faculty: f}, nil
}

// ListByDepartment returns one department's members in display order.
// activeOnly hides inactive profiles on public pages.
func (s *facultyServiceImpl) ListByDepartment(ctx context.Context, department string, activeOnly bool) (*dto.FacultyListResponse, error) {
	dept := models.Department(department)
	if !models.IsValidDepartment(dept) {
		return nil, apperrors.NewValidationError("Invalid department: " + department)
	}

	faculty, err := s.faculty.ListByDepartment(ctx, dept, activeOnly)
	if err != nil {
		return nil, err
	}

	return &dto.FacultyListResponse{Success: true, Faculty: faculty}, nil
}
