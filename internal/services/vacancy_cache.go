package services

import (
	"github.com/mkravets/hh-assistant/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

const DefaultCacheTTL = 5 * time.Minute

// VacancyCache holds recent search results keyed by FilterKey. Entries
// older than the TTL behave as misses; a later Put under the same key
// simply replaces them. The key space is small and short-lived, so the
// cache is not bounded.
type VacancyCache struct {
	cache *gocache.Cache
}

func NewVacancyCache(ttl time.Duration) *VacancyCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &VacancyCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *VacancyCache) Get(key FilterKey) ([]models.Vacancy, bool) {
	if value, found := c.cache.Get(string(key)); found {
		return value.([]models.Vacancy), true
	}
	return nil, false
}

func (c *VacancyCache) Put(key FilterKey, vacancies []models.Vacancy) {
	c.cache.Set(string(key), vacancies, gocache.DefaultExpiration)
}
