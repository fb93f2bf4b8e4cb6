package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeBoxArt struct {
	url   string
	err   error
	calls int
}

func (f *fakeBoxArt) LookupBoxArt(ctx context.Context, title string) (string, error) {
	f.calls++
	return f.url, f.err
}

func setupBacklog(t *testing.T, boxArt BoxArtClient) (*BacklogService, repository.UserRepository, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Game{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	repo := repository.NewUserRepository(db)
	owner := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, repo.Create(owner))

	return NewBacklogService(repo, boxArt), repo, owner
}

func TestBacklogList_PartitionsInFixedOrder(t *testing.T) {
	svc, _, owner := setupBacklog(t, nil)

	owner.Games = []models.Game{
		{ID: "g1", Title: "Done", Status: models.StatusCompleted},
		{ID: "g2", Title: "Playing", Status: models.StatusInProgress},
		{ID: "g3", Title: "Someday", Status: models.StatusPending},
		{ID: "g4", Title: "Gave Up", Status: models.StatusDropped},
		{ID: "g5", Title: "Mystery", Status: "Launching 2031"},
	}

	sections := svc.List(owner)
	require.Len(t, sections, 4)

	require.Equal(t, models.StatusInProgress, sections[0].Status)
	require.Equal(t, models.StatusPending, sections[1].Status)
	require.Equal(t, models.StatusCompleted, sections[2].Status)
	require.Equal(t, models.StatusDropped, sections[3].Status)

	require.Len(t, sections[1].Games, 2, "unrecognized status falls back to Pending")
	require.Equal(t, "Someday", sections[1].Games[0].Title)
	require.Equal(t, "Mystery", sections[1].Games[1].Title)
}

func TestBacklogCreate_DefaultsAndEnrichment(t *testing.T) {
	boxArt := &fakeBoxArt{url: "https://img.example.com/a.jpg"}
	svc, repo, owner := setupBacklog(t, boxArt)

	before := time.Now()
	game, err := svc.Create(context.Background(), owner, CreateGameInput{Title: "  Ico  "})
	require.NoError(t, err)

	require.Equal(t, "Ico", game.Title, "title is trimmed")
	require.Equal(t, models.StatusPending, game.Status)
	require.Nil(t, game.Rating)
	require.False(t, game.DateAdded.Before(before.Truncate(time.Second)))
	require.Equal(t, "https://img.example.com/a.jpg", game.BoxArt)
	require.NotEmpty(t, game.ID)

	stored, err := repo.FindByID(owner.ID)
	require.NoError(t, err)
	require.Len(t, stored.Games, 1)
}

func TestBacklogCreate_LookupErrorSwallowed(t *testing.T) {
	boxArt := &fakeBoxArt{err: errors.New("timeout")}
	svc, _, owner := setupBacklog(t, boxArt)

	game, err := svc.Create(context.Background(), owner, CreateGameInput{Title: "Rez"})
	require.NoError(t, err)
	require.Empty(t, game.BoxArt)
	require.Equal(t, 1, boxArt.calls)
}

func TestBacklogCreate_EmptyTitle(t *testing.T) {
	svc, repo, owner := setupBacklog(t, nil)

	_, err := svc.Create(context.Background(), owner, CreateGameInput{Title: " \t "})
	require.ErrorIs(t, err, ErrTitleRequired)

	stored, err := repo.FindByID(owner.ID)
	require.NoError(t, err)
	require.Empty(t, stored.Games)
}

func TestBacklogUpdate_UnsetRating(t *testing.T) {
	svc, repo, owner := setupBacklog(t, nil)

	rating := 3
	_, err := svc.Create(context.Background(), owner, CreateGameInput{Title: "Okami", Rating: &rating})
	require.NoError(t, err)
	gameID := owner.Games[0].ID

	_, err = svc.Update(owner, gameID, UpdateGameInput{ClearRating: true})
	require.NoError(t, err)

	stored, err := repo.FindByID(owner.ID)
	require.NoError(t, err)
	require.Nil(t, stored.Games[0].Rating)
}

func TestBacklogUpdate_UnknownGame(t *testing.T) {
	svc, _, owner := setupBacklog(t, nil)

	_, err := svc.Update(owner, "nope", UpdateGameInput{})
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestBacklogDelete_NoopWhenMissing(t *testing.T) {
	svc, repo, owner := setupBacklog(t, nil)

	_, err := svc.Create(context.Background(), owner, CreateGameInput{Title: "Journey"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, "does-not-exist"))
	require.NoError(t, svc.Delete(owner, "does-not-exist"))

	stored, err := repo.FindByID(owner.ID)
	require.NoError(t, err)
	require.Len(t, stored.Games, 1)
}
