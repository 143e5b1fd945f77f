package filestorage

import (
	"mime/multipart"
)

// StoredFile describes an uploaded file after it has been written to storage
type StoredFile struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file under subPath and describes where it was stored
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// DeleteFile removes a stored file; missing files are not an error
	DeleteFile(path string) error

	// GetFullPath returns the filesystem path for a stored path
	GetFullPath(path string) string
}
