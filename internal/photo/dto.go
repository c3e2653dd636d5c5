package photo

import (
	"time"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// SignedURLRequest represents the request for a batch of download links
type SignedURLRequest struct {
	PhotoIDs         []string `json:"photo_ids" validate:"required,min=1"`
	ExpiresInSeconds int      `json:"expires_in_seconds"`
}

// UploadResponse represents the response after a successful upload
type UploadResponse struct {
	ID          string `json:"id"`
	StoragePath string `json:"storage_path"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	Size        int64  `json:"size"`
	UploadedAt  string `json:"uploaded_at"`
}

// PhotoResponse represents photo metadata in listings
type PhotoResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mime_type"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// ToUploadResponse converts a Photo model to an UploadResponse DTO
func ToUploadResponse(p *models.Photo) *UploadResponse {
	return &UploadResponse{
		ID:          p.ID,
		StoragePath: p.StoragePath,
		Filename:    p.Filename,
		MimeType:    p.MimeType,
		Size:        p.Size,
		UploadedAt:  p.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// ToPhotoResponse converts a Photo model to a PhotoResponse DTO
func ToPhotoResponse(p *models.Photo) *PhotoResponse {
	return &PhotoResponse{
		ID:         p.ID,
		Filename:   p.Filename,
		MimeType:   p.MimeType,
		Size:       p.Size,
		UploadedAt: p.UploadedAt.UTC().Format(time.RFC3339),
	}
}
