package gormpersistence_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soil-advisor/internal/domain"
	gormpersistence "soil-advisor/internal/infra/persistence/gorm"
	"soil-advisor/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.PredictionRecord{}))
	return db
}

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	repo := gormpersistence.NewGormUserRepository(openTestDB(t))
	ctx := context.Background()

	user := &domain.User{Username: "alice", Password: "hash1"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash1", found.Password)
}

func TestGormUserRepository_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "alice", Password: "hash1"}))

	err := repo.Create(ctx, &domain.User{Username: "alice", Password: "hash2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateEntry))

	// Exactly one row survives.
	var count int64
	require.NoError(t, db.Model(&domain.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGormUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo := gormpersistence.NewGormUserRepository(openTestDB(t))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestGormUserRepository_UsernameIsCaseSensitiveMatch(t *testing.T) {
	repo := gormpersistence.NewGormUserRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "Alice", Password: "hash"}))

	found, err := repo.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Username)
}
