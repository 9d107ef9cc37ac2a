package services

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

type mockFilterRepo struct {
	filters map[int64]*models.SearchFilters
}

func (m *mockFilterRepo) GetByUser(_ context.Context, userID int64) (*models.SearchFilters, error) {
	return m.filters[userID], nil
}

type mockFetcher struct {
	mu     sync.Mutex
	calls  int
	result FetchResult
}

func (m *mockFetcher) Fetch(_ models.SearchFilters) FetchResult {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.result
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func moscowFilters(userID int64) *models.SearchFilters {
	return &models.SearchFilters{UserID: userID, City: strPtr("Москва"), Position: strPtr("QA")}
}

func Test_Search_WhenNoFiltersOrCity_ShouldReturnCityNotSet(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{
		2: {UserID: 2},
		3: {UserID: 3, City: strPtr("")},
	}}
	fetcher := &mockFetcher{}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(0))

	for _, userID := range []int64{1, 2, 3} {
		_, err := search.Run(context.Background(), userID)
		assert.ErrorIs(err, ErrCityNotSet)
	}
	assert.Equal(0, fetcher.callCount())
}

func Test_Search_WhenCityUnsupported_ShouldNotFetch(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{
		1: {UserID: 1, City: strPtr("Урюпинск")},
	}}
	fetcher := &mockFetcher{}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(0))

	_, err := search.Run(context.Background(), 1)

	assert.ErrorIs(err, ErrCityUnsupported)
	assert.Equal(0, fetcher.callCount())
}

func Test_Search_ShouldServeRepeatedRunsFromCache(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{1: moscowFilters(1)}}
	fetcher := &mockFetcher{result: FetchResult{
		Vacancies: []models.Vacancy{{ID: "1"}, {ID: "2"}},
		Complete:  true,
	}}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(DefaultCacheTTL))

	first, err := search.Run(context.Background(), 1)
	assert.NoError(err)

	second, err := search.Run(context.Background(), 1)
	assert.NoError(err)

	assert.Equal(first.Vacancies, second.Vacancies)
	assert.Equal(1, fetcher.callCount())
}

func Test_Search_UsersWithSameFilters_ShouldShareCacheEntry(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{
		1: moscowFilters(1),
		2: moscowFilters(2),
	}}
	fetcher := &mockFetcher{result: FetchResult{Vacancies: []models.Vacancy{{ID: "1"}}, Complete: true}}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(DefaultCacheTTL))

	_, err := search.Run(context.Background(), 1)
	assert.NoError(err)
	_, err = search.Run(context.Background(), 2)
	assert.NoError(err)

	assert.Equal(1, fetcher.callCount())
}

func Test_Search_WhenCacheEntryExpires_ShouldFetchAgain(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{1: moscowFilters(1)}}
	fetcher := &mockFetcher{result: FetchResult{Vacancies: []models.Vacancy{{ID: "1"}}, Complete: true}}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(20*time.Millisecond))

	_, err := search.Run(context.Background(), 1)
	assert.NoError(err)

	time.Sleep(50 * time.Millisecond)

	_, err = search.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Equal(2, fetcher.callCount())
}

func Test_Search_TruncatedFetch_ShouldStillBeCached(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{1: moscowFilters(1)}}
	fetcher := &mockFetcher{result: FetchResult{Vacancies: []models.Vacancy{{ID: "1"}}, Complete: false}}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(DefaultCacheTTL))

	first, err := search.Run(context.Background(), 1)
	assert.NoError(err)
	assert.False(first.Complete)

	second, err := search.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Len(second.Vacancies, 1)
	assert.Equal(1, fetcher.callCount())
}

func Test_Search_ConcurrentMisses_ShouldAllSucceed(t *testing.T) {

	assert := assert.New(t)

	repo := &mockFilterRepo{filters: map[int64]*models.SearchFilters{1: moscowFilters(1)}}
	fetcher := &mockFetcher{result: FetchResult{Vacancies: []models.Vacancy{{ID: "1"}}, Complete: true}}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(DefaultCacheTTL))

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = search.Run(context.Background(), 1)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(err)
	}
	// identical misses may race; afterwards the entry must be in place
	result, err := search.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Len(result.Vacancies, 1)
	assert.LessOrEqual(fetcher.callCount(), 10)
}

func Test_Search_WhenRepositoryFails_ShouldPropagate(t *testing.T) {

	assert := assert.New(t)

	repo := &failingFilterRepo{}
	fetcher := &mockFetcher{}
	search := NewVacancySearch(repo, fetcher, NewVacancyCache(0))

	_, err := search.Run(context.Background(), 1)

	assert.Error(err)
	assert.Equal(0, fetcher.callCount())
}

type failingFilterRepo struct{}

func (f *failingFilterRepo) GetByUser(_ context.Context, _ int64) (*models.SearchFilters, error) {
	return nil, errors.New("db is down")
}
