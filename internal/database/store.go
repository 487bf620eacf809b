package database

import (
	"errors"

	"drawing-tutor-backend/internal/models"

	"gorm.io/gorm"
)

// ErrStoreUnavailable is returned by Store methods when the database
// connection was never established.
var ErrStoreUnavailable = errors.New("store unavailable")

// Store wraps the tutorials table behind the small set of operations the
// service layer needs. A Store built over a nil handle is the disconnected
// state; every method checks for it, so call sites only ever see
// ErrStoreUnavailable rather than a nil-pointer panic.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Available reports whether the backing connection exists.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// Migrate creates the tutorials table and its indexes (created_at desc for
// listing, user_id for future per-user queries).
func (s *Store) Migrate() error {
	if !s.Available() {
		return ErrStoreUnavailable
	}
	return s.db.AutoMigrate(&models.Tutorial{})
}

// Insert persists a new tutorial record.
func (s *Store) Insert(tutorial *models.Tutorial) error {
	if !s.Available() {
		return ErrStoreUnavailable
	}
	return s.db.Create(tutorial).Error
}

// FindByID returns the tutorial with the given id, or (nil, nil) when no
// such record exists.
func (s *Store) FindByID(id string) (*models.Tutorial, error) {
	if !s.Available() {
		return nil, ErrStoreUnavailable
	}

	var tutorial models.Tutorial
	err := s.db.Where("id = ?", id).First(&tutorial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tutorial, nil
}

// FindPage returns tutorials sorted by creation time descending.
func (s *Store) FindPage(skip, limit int) ([]models.Tutorial, error) {
	if !s.Available() {
		return nil, ErrStoreUnavailable
	}

	var tutorials []models.Tutorial
	err := s.db.Model(&models.Tutorial{}).
		Order("created_at desc").
		Offset(skip).
		Limit(limit).
		Find(&tutorials).Error
	if err != nil {
		return nil, err
	}
	return tutorials, nil
}

// Count returns the total number of tutorial records.
func (s *Store) Count() (int64, error) {
	if !s.Available() {
		return 0, ErrStoreUnavailable
	}

	var total int64
	if err := s.db.Model(&models.Tutorial{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
