package services

import (
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/metrics"
	"github.com/pkg/errors"
	"sync"
)

// ErrStaleSession is returned when a navigation request references a user
// with no stored result set, e.g. after a restart.
var ErrStaleSession = errors.New("paging session is stale")

// ErrPageOutOfRange is returned for page numbers outside [1, totalPages].
var ErrPageOutOfRange = errors.New("page number is out of range")

var errEmptyResultSet = errors.New("can't start paging over an empty result set")

type Page struct {
	Vacancies []models.Vacancy
	Number    int
	Total     int
}

type pagingSession struct {
	vacancies   []models.Vacancy
	currentPage int
	totalPages  int
}

// PagingSessions stores, per user, a snapshot of the last fetched result
// set and the user's position in it. Sessions are process state only: a
// new fetch overwrites them, a restart drops them. Concurrent navigation
// for one user races on the current page; the last write wins.
type PagingSessions struct {
	mu       sync.RWMutex
	sessions map[int64]*pagingSession
}

func NewPagingSessions() *PagingSessions {
	return &PagingSessions{sessions: make(map[int64]*pagingSession)}
}

// Start replaces the user's session with a fresh one and returns the
// first page. Callers must report empty fetches themselves instead of
// starting a session over them.
func (p *PagingSessions) Start(userID int64, vacancies []models.Vacancy) (Page, error) {

	if len(vacancies) == 0 {
		return Page{}, errEmptyResultSet
	}

	p.mu.Lock()
	p.sessions[userID] = &pagingSession{
		vacancies:   vacancies,
		currentPage: 1,
		totalPages:  (len(vacancies) + SearchPageSize - 1) / SearchPageSize,
	}
	p.mu.Unlock()

	return p.GoToPage(userID, 1)
}

// GoToPage returns the requested page slice and moves the user's current
// page there. Repeated requests for the same page yield the same slice.
func (p *PagingSessions) GoToPage(userID int64, pageNumber int) (Page, error) {

	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[userID]
	if !ok {
		return Page{}, ErrStaleSession
	}

	if pageNumber < 1 || pageNumber > session.totalPages {
		return Page{}, errors.Wrapf(ErrPageOutOfRange, "page %d of %d", pageNumber, session.totalPages)
	}

	session.currentPage = pageNumber

	start := (pageNumber - 1) * SearchPageSize
	end := start + SearchPageSize
	if end > len(session.vacancies) {
		end = len(session.vacancies)
	}

	metrics.PagesServedCounter.Inc()
	return Page{
		Vacancies: session.vacancies[start:end],
		Number:    pageNumber,
		Total:     session.totalPages,
	}, nil
}

// FindVacancy looks a vacancy up in the user's current snapshot, for
// per-vacancy actions addressed by ID from inline keyboards.
func (p *PagingSessions) FindVacancy(userID int64, vacancyID string) (models.Vacancy, bool) {

	p.mu.RLock()
	defer p.mu.RUnlock()

	session, ok := p.sessions[userID]
	if !ok {
		return models.Vacancy{}, false
	}

	for _, vacancy := range session.vacancies {
		if vacancy.ID == vacancyID {
			return vacancy, true
		}
	}
	return models.Vacancy{}, false
}
