package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/events"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type vacancySearch interface {
	Run(ctx context.Context, userID int64) (SearchResult, error)
}

type digestFilterRepository interface {
	GetAll(ctx context.Context) ([]models.SearchFilters, error)
}

// DailyDigest runs every user's saved search once a day and publishes a
// digest event for users whose search produced vacancies. Delivery is
// best effort; a failed user is skipped, not retried.
type DailyDigest struct {
	search  vacancySearch
	filters digestFilterRepository
	bus     EventBus.Bus
	cron    *cron.Cron
}

func NewDailyDigest(bus EventBus.Bus, search vacancySearch, filters digestFilterRepository, schedule string) (*DailyDigest, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	digest := &DailyDigest{
		search:  search,
		filters: filters,
		bus:     bus,
		cron:    cron.New(),
	}

	if schedule == "" {
		schedule = "0 9 * * *"
	}

	if _, err := digest.cron.AddFunc(schedule, digest.sendDigests); err != nil {
		return nil, err
	}

	digest.cron.Start()
	log.Infof("daily digest started with schedule %q", schedule)
	return digest, nil
}

func (d *DailyDigest) Stop() {
	d.cron.Stop()
}

func (d *DailyDigest) sendDigests() {

	ctx := context.Background()

	allFilters, err := d.filters.GetAll(ctx)
	if err != nil {
		log.Errorf("couldn't load filters for daily digest: %v", err)
		return
	}

	sent := 0
	for _, filters := range allFilters {

		result, err := d.search.Run(ctx, filters.UserID)
		if err != nil {
			if !errors.Is(err, ErrCityNotSet) && !errors.Is(err, ErrCityUnsupported) {
				log.Errorf("daily digest search failed for user %v: %v", filters.UserID, err)
			}
			continue
		}

		if len(result.Vacancies) == 0 {
			continue
		}

		d.bus.Publish(events.DigestReadyTopic, events.DigestReady{
			UserID:    filters.UserID,
			Vacancies: result.Vacancies,
		})
		sent++
	}

	log.Infof("daily digest published for %v users", sent)
}
