package filestorage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dcbcollege/noticeboard/internal/pkg/helpers"
)

// Size ceilings for the two upload profiles.
const (
	MaxAttachmentSize   = 10 * 1024 * 1024
	MaxProfileImageSize = 2 * 1024 * 1024
)

// Profile describes the validation rules for one class of upload.
type Profile struct {
	MaxSize           int64
	AllowedExtensions []string
	AllowedMimeTypes  []string
}

// AttachmentProfile validates notification attachments.
var AttachmentProfile = Profile{
	MaxSize:           MaxAttachmentSize,
	AllowedExtensions: []string{"pdf", "doc", "docx", "jpg", "jpeg", "png"},
	AllowedMimeTypes: []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/jpeg",
		"image/png",
	},
}

// ProfileImageProfile validates faculty profile images.
var ProfileImageProfile = Profile{
	MaxSize:           MaxProfileImageSize,
	AllowedExtensions: []string{"jpg", "jpeg", "png"},
	AllowedMimeTypes:  []string{"image/jpeg", "image/png"},
}

// ValidateUpload checks an inbound file against a profile. Checks run in
// order (presence, size, extension, sniffed content type) and the first
// failure returns its specific reason.
func ValidateUpload(fh *multipart.FileHeader, profile Profile) error {
	if fh == nil || fh.Filename == "" {
		return fmt.Errorf("no file was uploaded")
	}

	if fh.Size > profile.MaxSize {
		return fmt.Errorf("file size exceeds %s limit", helpers.FormatFileSize(profile.MaxSize))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !contains(profile.AllowedExtensions, ext) {
		return fmt.Errorf("file type not allowed. Allowed types: %s", strings.Join(profile.AllowedExtensions, ", "))
	}

	// Sniff the actual content bytes. A renamed executable with an allowed
	// extension fails here.
	file, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for _, allowed := range profile.AllowedMimeTypes {
		if detected.Is(allowed) {
			return nil
		}
	}

	return fmt.Errorf("invalid file type detected")
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
