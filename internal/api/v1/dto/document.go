package dto

import "time"

// DownloadURLResponseDTO is a short-lived link to a stored document.
type DownloadURLResponseDTO struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
