package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UploadedFile is one staged upload awaiting detection or processing.
type UploadedFile struct {
	ID          string    `json:"fileId"`
	Filename    string    `json:"originalName"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	Content     []byte    `json:"-"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// FileCache stages uploaded file bytes between the upload call and the
// detect/process calls. Entries expire after the configured TTL; an
// explicit sweep loop evicts them. The clock is injected so expiry is
// testable.
type FileCache struct {
	mu     sync.RWMutex
	files  map[string]*UploadedFile
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Entry
}

// NewFileCache creates a FileCache with the given retention window. A nil
// clock defaults to time.Now.
func NewFileCache(ttl time.Duration, now func() time.Time, logger *logrus.Logger) *FileCache {
	if now == nil {
		now = time.Now
	}
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileCache{
		files:  make(map[string]*UploadedFile),
		ttl:    ttl,
		now:    now,
		logger: log.WithField("component", "file-cache"),
	}
}

// Put stages a file and returns its cache entry with a fresh id
func (c *FileCache) Put(content []byte, filename, contentType string) *UploadedFile {
	file := &UploadedFile{
		ID:          uuid.New().String(),
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: contentType,
		Content:     content,
		UploadedAt:  c.now(),
	}

	c.mu.Lock()
	c.files[file.ID] = file
	c.mu.Unlock()

	return file
}

// Get returns a staged file. Expired entries are treated as absent.
func (c *FileCache) Get(id string) (*UploadedFile, bool) {
	c.mu.RLock()
	file, ok := c.files[id]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(file.UploadedAt) > c.ttl {
		c.Delete(id)
		return nil, false
	}
	return file, true
}

// Delete removes a staged file
func (c *FileCache) Delete(id string) {
	c.mu.Lock()
	delete(c.files, id)
	c.mu.Unlock()
}

// Len returns the number of staged files, expired or not
func (c *FileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// Sweep evicts every expired entry and returns how many were removed
func (c *FileCache) Sweep() int {
	cutoff := c.now().Add(-c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, file := range c.files {
		if file.UploadedAt.Before(cutoff) {
			delete(c.files, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs a periodic eviction loop until ctx is cancelled
func (c *FileCache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.Sweep(); removed > 0 {
					c.logger.WithField("removed", removed).Debug("Evicted expired uploads")
				}
			}
		}
	}()
}
