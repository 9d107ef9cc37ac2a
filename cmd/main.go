package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/mkravets/hh-assistant/internal/bot"
	"github.com/mkravets/hh-assistant/internal/clients/gemini"
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/config"
	"github.com/mkravets/hh-assistant/internal/logger"
	"github.com/mkravets/hh-assistant/internal/metrics"
	"github.com/mkravets/hh-assistant/internal/repositories"
	"github.com/mkravets/hh-assistant/internal/services"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	users := repositories.NewUsersRepository(dbContext.DB)
	filters := repositories.NewFiltersRepository(dbContext.DB)
	llmSettings := repositories.NewLLMSettingsRepository(dbContext.DB)
	data := repositories.NewDataRepository(dbContext.DB)

	hhClient := hh.NewClient()
	hhClient.SetRateLimit(cfg.Bot.HhMaxRequestsPerSecond)

	geminiClient, err := gemini.NewClient(ctx, cfg.Bot.AIKey, gemini.Model15Flash)
	if err != nil {
		log.Fatalf("can't create gemini client: %v", err)
	}
	geminiClient.SetMinuteRateLimit(cfg.Bot.AiMaxRequestsPerMinute)
	geminiClient.SetDayRateLimit(cfg.Bot.AiMaxRequestsPerDay)

	cache := services.NewVacancyCache(cfg.Search.CacheTTL)
	fetcher := services.NewHHVacanciesFetcher(hhClient, cfg.Search.MaxResults)
	search := services.NewVacancySearch(filters, fetcher, cache)
	sessions := services.NewPagingSessions()
	generator := services.NewGenerator(users, llmSettings, hhClient, geminiClient)

	bus := EventBus.New()

	digest, err := services.NewDailyDigest(bus, search, filters, cfg.Bot.DigestSchedule)
	if err != nil {
		log.Fatalf("can't create daily digest: %v", err)
	}
	defer digest.Stop()

	tgbot, err := bot.NewBot(cfg.Bot.Token, bus, bot.Repositories{
		Users:       users,
		Filters:     filters,
		LLMSettings: llmSettings,
		Data:        data,
	}, search, sessions, generator)
	if err != nil {
		log.Fatalf("can't create bot: %v", err)
	}
	go tgbot.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	tgbot.Stop()
	log.Info("Services stopped.")
}
