package services

import (
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/logger"
	"github.com/mkravets/hh-assistant/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"time"
)

// SearchPageSize is the per_page value used against the provider and the
// page size shown to users.
const SearchPageSize = 5

// DefaultMaxResults caps how many vacancies one fetch accumulates across
// provider pages.
const DefaultMaxResults = 10

type hhSearchClient interface {
	GetVacancies(parameters hh.SearchParameters) (hh.SearchPage, error)
}

// FetchResult carries fetched vacancies plus whether the fetch ran to a
// natural stop. Complete is false when a provider call failed and the
// sequence was truncated to what had been accumulated.
type FetchResult struct {
	Vacancies []models.Vacancy
	Complete  bool
}

// HHVacanciesFetcher pages through the provider search endpoint until the
// result budget is reached or the provider runs out of pages. Provider
// failures truncate the result instead of propagating.
type HHVacanciesFetcher struct {
	client     hhSearchClient
	maxResults int
}

func NewHHVacanciesFetcher(client hhSearchClient, maxResults int) *HHVacanciesFetcher {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &HHVacanciesFetcher{client: client, maxResults: maxResults}
}

func (f *HHVacanciesFetcher) Fetch(filters models.SearchFilters) FetchResult {

	city := ""
	if filters.City != nil {
		city = *filters.City
	}

	areaID, ok := hh.AreaIDByCity(city)
	if !ok {
		return FetchResult{Complete: true}
	}

	start := time.Now()
	defer func() {
		metrics.RemoteFetchDuration.Observe(time.Since(start).Seconds())
	}()

	var accumulated []models.Vacancy
	defer func() {
		metrics.VacanciesFetchedCounter.Add(float64(len(accumulated)))
	}()

	for page := 0; len(accumulated) < f.maxResults; page++ {

		searchPage, err := f.client.GetVacancies(f.createSearchParams(filters, areaID, page))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
				Errorf("vacancies fetch truncated on page %d: %v", page, err)
			return FetchResult{Vacancies: accumulated}
		}

		if len(searchPage.Items) == 0 {
			break
		}

		for _, item := range searchPage.Items {
			if len(accumulated) >= f.maxResults {
				break
			}
			accumulated = append(accumulated, toVacancy(item))
		}

		if page+1 >= searchPage.Pages {
			break
		}
	}

	return FetchResult{Vacancies: accumulated, Complete: true}
}

func (f *HHVacanciesFetcher) createSearchParams(filters models.SearchFilters, areaID string, page int) hh.SearchParameters {

	params := hh.SearchParameters{
		AreaID:         areaID,
		Page:           page,
		PerPage:        SearchPageSize,
		OnlyWithSalary: filters.SalaryFrom != nil,
	}

	if filters.Position != nil {
		params.Text = *filters.Position
	}
	if filters.SalaryFrom != nil {
		params.Salary = *filters.SalaryFrom
	}
	if filters.Remote != nil && *filters.Remote {
		params.Remote = true
	}
	if filters.FreshnessDays != nil && lo.Contains([]int{1, 2, 3}, *filters.FreshnessDays) {
		params.Period = *filters.FreshnessDays
	}
	if filters.Employment != nil {
		params.Employment = string(*filters.Employment)
	}
	if filters.Experience != nil {
		params.Experience = string(*filters.Experience)
	}
	if filters.OnlyDirectEmployers != nil && *filters.OnlyDirectEmployers {
		params.OnlyDirectEmployers = true
	}

	return params
}

func toVacancy(item hh.Vacancy) models.Vacancy {

	vacancy := models.Vacancy{
		ID:       item.ID,
		Name:     item.Name,
		Employer: item.Employer.Name,
		Area:     item.Area.Name,
		Url:      item.Url,
	}

	if item.Salary != nil {
		vacancy.Salary = &models.Salary{
			From:     item.Salary.From,
			To:       item.Salary.To,
			Currency: item.Salary.Currency,
		}
	}

	return vacancy
}
