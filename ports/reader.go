package ports

import (
	"io"

	"terlab/domain/post"
)

// ImportResult is the outcome of reading one uploaded post file
type ImportResult struct {
	Posts   []post.Post `json:"-"`
	Rows    int         `json:"rows"`
	Skipped int         `json:"skipped"`
}

// PostReader parses an uploaded spreadsheet into unsaved posts.
// The file name selects the format.
type PostReader interface {
	Read(r io.Reader, filename string) (*ImportResult, error)
}
