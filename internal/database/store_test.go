package database

import (
	"testing"
	"time"

	"drawing-tutor-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.Tutorial{})
	if err := db.AutoMigrate(&models.Tutorial{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return NewStore(db)
}

func newTutorial(id, subject string, createdAt time.Time) *models.Tutorial {
	tutorial := &models.Tutorial{
		ID:               id,
		InputType:        models.InputTypeTopic,
		Subject:          subject,
		TutorialImageURL: "/static/tutorials/tutorial_" + id + ".png",
		Prompt:           "prompt",
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	tutorial.SetSteps([]models.Step{{StepNumber: 1, Title: "Basic Shapes", Description: "desc"}})
	return tutorial
}

func TestStoreInsertAndFindByID(t *testing.T) {
	store := setupTestStore(t)

	tutorial := newTutorial("id-1", "a red fox", time.Now().UTC())
	assert.NoError(t, store.Insert(tutorial))

	found, err := store.FindByID("id-1")
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "a red fox", found.Subject)

	steps, err := found.GetSteps()
	assert.NoError(t, err)
	assert.Len(t, steps, 1)
	assert.Equal(t, "Basic Shapes", steps[0].Title)
}

func TestStoreFindByIDMissing(t *testing.T) {
	store := setupTestStore(t)

	found, err := store.FindByID("nope")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestStoreFindPageOrdering(t *testing.T) {
	store := setupTestStore(t)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		tutorial := newTutorial(
			"id-"+string(rune('a'+i)),
			"subject",
			base.Add(time.Duration(i)*time.Minute),
		)
		assert.NoError(t, store.Insert(tutorial))
	}

	total, err := store.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)

	page, err := store.FindPage(0, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
	// Newest first
	assert.Equal(t, "id-e", page[0].ID)
	assert.Equal(t, "id-d", page[1].ID)

	page, err = store.FindPage(4, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, "id-a", page[0].ID)

	page, err = store.FindPage(10, 2)
	assert.NoError(t, err)
	assert.Len(t, page, 0)
}

func TestStoreUnavailable(t *testing.T) {
	store := NewStore(nil)

	assert.False(t, store.Available())

	assert.ErrorIs(t, store.Insert(&models.Tutorial{}), ErrStoreUnavailable)

	_, err := store.FindByID("id")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = store.FindPage(0, 10)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = store.Count()
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, store.Migrate(), ErrStoreUnavailable)
}
