package services

import (
	"context"
	"fmt"
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/clients/openai"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/logger"
	"github.com/mkravets/hh-assistant/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

// ErrProfileNotFound is returned when generation is requested before the
// user filled in a profile.
var ErrProfileNotFound = errors.New("user profile is not filled in")

type llmProvider interface {
	GenerateResponse(ctx context.Context, text string) (string, error)
}

type userRepository interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

type llmSettingsRepository interface {
	GetByUser(ctx context.Context, userID int64) (*models.LLMSettings, error)
}

type vacancyDetailClient interface {
	GetVacancy(id string) (hh.VacancyDetail, error)
}

// Generator builds resume and cover letter texts for a vacancy. A user
// with saved LLM settings talks to their own OpenAI-compatible endpoint;
// everyone else goes through the default provider.
type Generator struct {
	users           userRepository
	settings        llmSettingsRepository
	detailClient    vacancyDetailClient
	defaultProvider llmProvider
	detailCache     *gocache.Cache
}

func NewGenerator(users userRepository, settings llmSettingsRepository,
	detailClient vacancyDetailClient, defaultProvider llmProvider) *Generator {

	return &Generator{
		users:           users,
		settings:        settings,
		detailClient:    detailClient,
		defaultProvider: defaultProvider,
		detailCache:     gocache.New(DefaultCacheTTL, 2*DefaultCacheTTL),
	}
}

func (g *Generator) Resume(ctx context.Context, userID int64, vacancy models.Vacancy) (string, error) {

	card, user, provider, err := g.prepare(ctx, userID, vacancy)
	if err != nil {
		return "", err
	}

	start := time.Now()
	defer func() {
		metrics.GenerationDuration.WithLabelValues("resume").Observe(time.Since(start).Seconds())
	}()
	return provider.GenerateResponse(ctx, resumePrompt(card, *user))
}

func (g *Generator) CoverLetter(ctx context.Context, userID int64, vacancy models.Vacancy) (string, error) {

	card, user, provider, err := g.prepare(ctx, userID, vacancy)
	if err != nil {
		return "", err
	}

	start := time.Now()
	defer func() {
		metrics.GenerationDuration.WithLabelValues("cover_letter").Observe(time.Since(start).Seconds())
	}()
	return provider.GenerateResponse(ctx, coverLetterPrompt(card, *user))
}

func (g *Generator) prepare(ctx context.Context, userID int64, vacancy models.Vacancy) (models.VacancyCard, *models.User, llmProvider, error) {

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return models.VacancyCard{}, nil, nil, err
	}
	if user == nil {
		return models.VacancyCard{}, nil, nil, ErrProfileNotFound
	}

	provider, err := g.resolveProvider(ctx, userID)
	if err != nil {
		return models.VacancyCard{}, nil, nil, err
	}

	return models.NewVacancyCard(vacancy, g.vacancyDetail(vacancy.ID)), user, provider, nil
}

func (g *Generator) resolveProvider(ctx context.Context, userID int64) (llmProvider, error) {

	settings, err := g.settings.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings != nil && settings.APIKey != "" {
		return openai.NewClient(settings.BaseURL, settings.APIKey, settings.Model), nil
	}
	return g.defaultProvider, nil
}

// vacancyDetail is best effort: generation proceeds without description
// and labels when the detail call fails.
func (g *Generator) vacancyDetail(vacancyID string) *models.VacancyDetail {

	if cached, found := g.detailCache.Get(vacancyID); found {
		detail := cached.(models.VacancyDetail)
		return &detail
	}

	raw, err := g.detailClient.GetVacancy(vacancyID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
			Errorf("couldn't load vacancy %v details: %v", vacancyID, err)
		return nil
	}

	detail := models.VacancyDetail{
		Description: raw.Description,
		Experience:  raw.Experience.Name,
		Employment:  raw.Employment.Name,
	}
	g.detailCache.Set(vacancyID, detail, gocache.DefaultExpiration)
	return &detail
}

func resumePrompt(card models.VacancyCard, user models.User) string {

	return fmt.Sprintf(`Роль: эксперт по трудоустройству.
Задача: создать профессиональное резюме на русском языке для кандидата под вакансию.

Вакансия:
- Название: %v
- Компания: %v
- Город: %v
- Зарплата: %v – %v

Профиль кандидата:
- ФИО: %v
- Город: %v
- Желаемая должность: %v
- Навыки: %v
- Опыт: %v

Требования:
- Только резюме, без пояснений.
- Используй структуру: Контакты, Цель, Опыт работы, Навыки, Образование.
- Адаптируй под вакансию.`,
		card.Title, card.Company, card.City,
		salaryBoundToText(card.SalaryFrom), salaryBoundToText(card.SalaryTo),
		orDash(user.FullName), orDash(user.City), orDash(user.DesiredPosition),
		orDash(user.Skills), orDash(user.Resume))
}

func coverLetterPrompt(card models.VacancyCard, user models.User) string {

	return fmt.Sprintf(`Роль: соискатель высокой квалификации.
Задача: написать сопроводительное письмо на русском для вакансии.

Вакансия: %v в компании %v (%v).

Профиль:
- Имя: %v
- Навыки: %v

Правила:
- Письмо должно быть кратким (5–7 предложений), убедительным, без шаблонных фраз.
- Подчеркни соответствие навыков требованиям вакансии.
- Не пиши «Уважаемая HR-команда» — начни сразу с сути.
- Только текст письма, без подписи и приветствия.`,
		card.Title, card.Company, card.City, orDash(user.FullName), orDash(user.Skills))
}

func salaryBoundToText(bound *int) string {
	if bound == nil {
		return "не указана"
	}
	return fmt.Sprintf("%d", *bound)
}

func orDash(value string) string {
	if value == "" {
		return "—"
	}
	return value
}
