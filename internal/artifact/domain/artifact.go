// Package domain defines redacted artifacts held for download and their errors.
package domain

import (
	"time"

	"github.com/allisson/redactor/internal/errors"
)

// Artifact is a redacted document waiting to be downloaded.
type Artifact struct {
	ID          string
	FileName    string
	ContentType string
	Content     []byte
	// Size is the length of Content in bytes.
	Size int
	// Checksum is the hex BLAKE3-256 digest of Content, served as the download ETag.
	Checksum  string
	CreatedAt time.Time
	// ExpiresAt is zero when the artifact never expires.
	ExpiresAt time.Time
}

// IsExpired reports whether the artifact is past its expiry at now.
func (a *Artifact) IsExpired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

var (
	// ErrArtifactNotFound indicates an unknown, expired or deleted artifact id.
	ErrArtifactNotFound = errors.Wrap(errors.ErrNotFound, "artifact not found")

	// ErrStorageFailed indicates the artifact could not be stored.
	ErrStorageFailed = errors.New("artifact storage failed")

	// ErrStoreFull is returned by Put when MaxArtifacts artifacts are already held.
	ErrStoreFull = errors.Tag(errors.Wrap(ErrStorageFailed, "artifact store is full"), errors.ErrCapacity)
)
