package models

import "time"

// NotificationFile is one stored attachment, exclusively owned by its
// notification. Its database row cascades away with the owning row; the
// physical file is removed best-effort afterwards.
type NotificationFile struct {
	ID             int64     `json:"id" db:"id"`
	NotificationID int64     `json:"notificationId" db:"notification_id"`
	OriginalName   string    `json:"originalName" db:"original_name"`
	SavedName      string    `json:"savedName" db:"saved_name"`
	FilePath       string    `json:"filePath" db:"file_path"`
	FileSize       int64     `json:"fileSize" db:"file_size"`
	FileType       string    `json:"fileType" db:"file_type"`
	UploadDate     time.Time `json:"uploadDate" db:"upload_date"`
}
