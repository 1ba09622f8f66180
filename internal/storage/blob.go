package storage

import (
	"fmt"
	"io"
	"time"
)

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}

// ImportKey is where an uploaded workbook is archived before it is parsed.
func ImportKey(userID string, at time.Time) string {
	return fmt.Sprintf("imports/%s/%s.xlsx", userID, at.UTC().Format("20060102T150405.000000000"))
}
