// Package store keeps redacted artifacts in process memory until they are downloaded
// or expire.
package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	artifactDomain "github.com/allisson/redactor/internal/artifact/domain"
)

// MaxPutAttempts bounds id regeneration when a freshly drawn id is already taken.
const MaxPutAttempts = 3

// Config configures a MemoryStore.
type Config struct {
	// TTL is the artifact lifetime. Zero keeps artifacts until deleted.
	TTL time.Duration
	// MaxArtifacts caps the number of stored artifacts. Zero means unlimited.
	MaxArtifacts int
	// CompressionEnabled stores content zstd compressed when that saves space.
	CompressionEnabled bool
}

type entry struct {
	meta       artifactDomain.Artifact
	data       []byte
	compressed bool
}

// MemoryStore is a concurrency safe id → artifact map. Readers never wait for writers:
// entries are immutable once inserted and the map is a sync.Map.
type MemoryStore struct {
	entries sync.Map
	count   atomic.Int64
	config  Config
	logger  *slog.Logger

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	now   func() time.Time
	newID func() string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(config Config, logger *slog.Logger) (*MemoryStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &MemoryStore{
		config:  config,
		logger:  logger,
		encoder: encoder,
		decoder: decoder,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// Put stores a copy of content under a fresh random id and returns the id.
func (s *MemoryStore) Put(ctx context.Context, content []byte, fileName, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if n := s.count.Add(1); s.config.MaxArtifacts > 0 && n > int64(s.config.MaxArtifacts) {
		s.count.Add(-1)
		s.logger.Warn("artifact store is full", slog.Int("max_artifacts", s.config.MaxArtifacts))
		return "", artifactDomain.ErrStoreFull
	}

	now := s.now().UTC()
	checksum := blake3.Sum256(content)
	e := &entry{
		meta: artifactDomain.Artifact{
			FileName:    fileName,
			ContentType: contentType,
			Size:        len(content),
			Checksum:    hex.EncodeToString(checksum[:]),
			CreatedAt:   now,
		},
	}
	if s.config.TTL > 0 {
		e.meta.ExpiresAt = now.Add(s.config.TTL)
	}

	if s.config.CompressionEnabled {
		if compressed := s.encoder.EncodeAll(content, nil); len(compressed) < len(content) {
			e.data = compressed
			e.compressed = true
		}
	}
	if !e.compressed {
		e.data = append([]byte(nil), content...)
	}

	for attempt := 1; attempt <= MaxPutAttempts; attempt++ {
		id := s.newID()
		e.meta.ID = id
		if _, loaded := s.entries.LoadOrStore(id, e); !loaded {
			return id, nil
		}
		s.logger.Warn("artifact id collision", slog.Int("attempt", attempt))
	}

	s.count.Add(-1)
	return "", artifactDomain.ErrStorageFailed
}

// Get returns the artifact with its content. Unknown and expired ids return
// artifactDomain.ErrArtifactNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*artifactDomain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := s.entries.Load(id)
	if !ok {
		return nil, artifactDomain.ErrArtifactNotFound
	}
	e := value.(*entry)

	if e.meta.IsExpired(s.now()) {
		s.evict(id, e)
		return nil, artifactDomain.ErrArtifactNotFound
	}

	artifact := e.meta
	if e.compressed {
		content, err := s.decoder.DecodeAll(e.data, make([]byte, 0, e.meta.Size))
		if err != nil {
			s.logger.Error("failed to decompress artifact", slog.String("artifact_id", id), slog.Any("error", err))
			return nil, artifactDomain.ErrStorageFailed
		}
		artifact.Content = content
	} else {
		artifact.Content = append([]byte(nil), e.data...)
	}

	return &artifact, nil
}

// Delete removes an artifact. Unknown and expired ids return
// artifactDomain.ErrArtifactNotFound.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, loaded := s.entries.LoadAndDelete(id)
	if !loaded {
		return artifactDomain.ErrArtifactNotFound
	}
	s.count.Add(-1)

	if value.(*entry).meta.IsExpired(s.now()) {
		return artifactDomain.ErrArtifactNotFound
	}
	return nil
}

// Len returns the number of stored artifacts, expired ones included until swept.
func (s *MemoryStore) Len() int {
	return int(s.count.Load())
}

// Sweep evicts every expired artifact and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	removed := 0
	s.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		if e.meta.IsExpired(now) && s.evict(key.(string), e) {
			removed++
		}
		return true
	})
	return removed
}

// Run sweeps expired artifacts every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || s.config.TTL <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("expired artifacts evicted", slog.Int("count", removed))
			}
		}
	}
}

// Close releases the zstd decoder.
func (s *MemoryStore) Close() {
	s.decoder.Close()
	_ = s.encoder.Close()
}

// evict removes id only if it still maps to e, so a concurrent Get or Delete either
// sees the artifact or gets not found.
func (s *MemoryStore) evict(id string, e *entry) bool {
	if s.entries.CompareAndDelete(id, e) {
		s.count.Add(-1)
		return true
	}
	return false
}
