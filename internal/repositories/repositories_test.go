package repositories

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func setupDb(t *testing.T) *DbContext {

	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())

	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func Test_FiltersRepository_UpsertAndGet(t *testing.T) {

	dbContext := setupDb(t)
	repo := NewFiltersRepository(dbContext.DB)
	ctx := context.Background()

	missing, err := repo.GetByUser(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	city := "Москва"
	salary := 100000
	filters := models.SearchFilters{UserID: 42, City: &city, SalaryFrom: &salary}
	require.NoError(t, repo.Upsert(ctx, filters))

	saved, err := repo.GetByUser(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Москва", *saved.City)
	assert.Equal(t, 100000, *saved.SalaryFrom)
	assert.Nil(t, saved.Position)
	assert.Nil(t, saved.Remote)

	newCity := "Казань"
	filters.City = &newCity
	require.NoError(t, repo.Upsert(ctx, filters))

	saved, err = repo.GetByUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Казань", *saved.City)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func Test_UsersRepository_UpsertAndGet(t *testing.T) {

	dbContext := setupDb(t)
	repo := NewUsersRepository(dbContext.DB)
	ctx := context.Background()

	missing, err := repo.GetByID(ctx, 7)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	user := models.User{TelegramID: 7, FullName: "Иванов Иван", City: "Москва", Skills: "Go, SQL"}
	require.NoError(t, repo.Upsert(ctx, user))

	saved, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Иванов Иван", saved.FullName)

	user.Skills = "Go, SQL, Docker"
	require.NoError(t, repo.Upsert(ctx, user))

	saved, err = repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Go, SQL, Docker", saved.Skills)
}

func Test_LLMSettingsRepository_UpsertAndGet(t *testing.T) {

	dbContext := setupDb(t)
	repo := NewLLMSettingsRepository(dbContext.DB)
	ctx := context.Background()

	missing, err := repo.GetByUser(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	settings := models.LLMSettings{UserID: 1, BaseURL: "https://api.openai.com/v1", APIKey: "sk-test", Model: "gpt-4o-mini"}
	require.NoError(t, repo.Upsert(ctx, settings))

	saved, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "sk-test", saved.APIKey)
	assert.Equal(t, "gpt-4o-mini", saved.Model)
}
