package services

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/metrics"
	"github.com/pkg/errors"
)

// ErrCityNotSet is returned when a user has no filters or no city yet.
var ErrCityNotSet = errors.New("search city is not set")

// ErrCityUnsupported is returned when the saved city is not in the
// supported city table.
var ErrCityUnsupported = errors.New("search city is not supported")

type filterRepository interface {
	GetByUser(ctx context.Context, userID int64) (*models.SearchFilters, error)
}

type vacanciesFetcher interface {
	Fetch(filters models.SearchFilters) FetchResult
}

type SearchResult struct {
	Vacancies []models.Vacancy
	Complete  bool
}

// VacancySearch resolves a user's saved filters and serves the search
// from cache when a fresh entry exists, falling back to a remote fetch.
// Concurrent identical misses may both fetch; the last Put wins, which is
// harmless since cached sequences are immutable.
type VacancySearch struct {
	filters filterRepository
	fetcher vacanciesFetcher
	cache   *VacancyCache
}

func NewVacancySearch(filters filterRepository, fetcher vacanciesFetcher, cache *VacancyCache) *VacancySearch {
	return &VacancySearch{filters: filters, fetcher: fetcher, cache: cache}
}

func (s *VacancySearch) Run(ctx context.Context, userID int64) (SearchResult, error) {

	filters, err := s.filters.GetByUser(ctx, userID)
	if err != nil {
		return SearchResult{}, err
	}

	if filters == nil || filters.City == nil || *filters.City == "" {
		return SearchResult{}, ErrCityNotSet
	}

	if _, ok := hh.AreaIDByCity(*filters.City); !ok {
		return SearchResult{}, errors.Wrap(ErrCityUnsupported, *filters.City)
	}

	key := DeriveFilterKey(*filters)

	if cached, found := s.cache.Get(key); found {
		metrics.CacheLookupsCounter.WithLabelValues("hit").Inc()
		return SearchResult{Vacancies: cached, Complete: true}, nil
	}
	metrics.CacheLookupsCounter.WithLabelValues("miss").Inc()

	result := s.fetcher.Fetch(*filters)
	s.cache.Put(key, result.Vacancies)

	return SearchResult{Vacancies: result.Vacancies, Complete: result.Complete}, nil
}
