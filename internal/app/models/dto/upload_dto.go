package dto

import "github.com/yigit/mentoraid/internal/pkg/filestorage"

// SkippedFile is an upload that was not accepted
type SkippedFile struct {
	Name   string `json:"name" example:"notes.pdf"`
	Reason string `json:"reason" example:"unsupported file type"`
}

// UploadResponse summarises an upload batch
type UploadResponse struct {
	BatchID  string                   `json:"batchId"`
	Accepted []filestorage.StoredFile `json:"accepted"`
	Skipped  []SkippedFile            `json:"skipped,omitempty"`
}
