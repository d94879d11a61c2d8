package domain

import "time"

// MaxUploadBytes bounds an uploaded library file.
const MaxUploadBytes = 50 << 20

// LibraryFile describes one PDF held in the local library folder.
type LibraryFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}
