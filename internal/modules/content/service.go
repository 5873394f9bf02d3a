package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pagesage/core/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a token has no live entry, either because it
// was never issued or because it expired.
var ErrNotFound = errors.New("content not found")

// ErrEmptyText is returned when an insert is attempted with no text.
var ErrEmptyText = errors.New("text is empty")

// StorageError wraps a persistence-layer failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Service owns the lifecycle of stored content entries: insert, lookup and
// age-based purge. Entries are immutable after insertion.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Insert persists text under a freshly generated token and returns it.
func (s *Service) Insert(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}

	entry := models.ContentModel{Text: text}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return "", &StorageError{Op: "insert", Err: err}
	}
	return entry.Token, nil
}

// Get returns the entry for an exact token match, or ErrNotFound.
func (s *Service) Get(ctx context.Context, token string) (*models.ContentModel, error) {
	var entry models.ContentModel
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "get", Err: err}
	}
	return &entry, nil
}

// PurgeOlderThan deletes all entries created before cutoff and returns the
// number of rows removed. The single DELETE is atomic per row, so a purge
// never races with a concurrent insert whose timestamp is at or after the
// cutoff.
func (s *Service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ContentModel{})
	if result.Error != nil {
		return 0, &StorageError{Op: "purge", Err: result.Error}
	}
	return result.RowsAffected, nil
}
