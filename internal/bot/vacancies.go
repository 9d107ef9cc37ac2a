package bot

import (
	"context"
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/logger"
	"github.com/mkravets/hh-assistant/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strconv"
	"strings"
)

const vacanciesCommandName = "Вакансии"

const (
	pageCallbackPrefix   = "page:"
	resumeCallbackPrefix = "resume:"
	coverCallbackPrefix  = "cover:"
	skipCallbackPrefix   = "skip:"
	noopCallback         = "noop"
)

func (b *Bot) showVacancies(userID int64, chatID int64) {

	result, err := b.search.Run(context.Background(), userID)

	switch {
	case errors.Is(err, services.ErrCityNotSet):
		b.sendText(chatID, "⚠️ Город не указан. Задайте его через \""+searchSettingsCommandName+"\".")
		return
	case errors.Is(err, services.ErrCityUnsupported):
		b.sendText(chatID, "⚠️ Этот город не поддерживается. Выберите один из: "+
			strings.Join(hh.SupportedCities(), ", ")+".")
		return
	case err != nil:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		b.sendText(chatID, "Внутренняя ошибка!")
		return
	}

	if len(result.Vacancies) == 0 {
		b.sendText(chatID, "Вакансий не найдено.")
		return
	}

	if !result.Complete {
		log.Warnf("serving truncated vacancies result to user %v", userID)
	}

	page, err := b.sessions.Start(userID, result.Vacancies)
	if err != nil {
		log.Error(err)
		b.sendText(chatID, "Внутренняя ошибка!")
		return
	}

	b.sendPage(chatID, page)
}

func (b *Bot) sendPage(chatID int64, page services.Page) {

	for _, vacancy := range page.Vacancies {
		msg := botApi.NewMessage(chatID, formatVacancy(vacancy))
		msg.ParseMode = botApi.ModeHTML
		msg.DisableWebPagePreview = true
		msg.ReplyMarkup = vacancyKeyboard(vacancy.ID)
		_, _ = sendWithLogError(b.api, msg)
	}

	nav := botApi.NewMessage(chatID, fmt.Sprintf("📂 Страница %d из %d", page.Number, page.Total))
	nav.ReplyMarkup = navigationKeyboard(page)
	_, _ = sendWithLogError(b.api, nav)
}

func formatVacancy(vacancy models.Vacancy) string {

	salary := "Не указана"
	if vacancy.Salary != nil && vacancy.Salary.From != nil {
		salary = strconv.Itoa(*vacancy.Salary.From)
	}

	return fmt.Sprintf("💼 <b>%v</b>\n🏢 %v\n💰 От %v ₽\n📍 %v\n🔗 <a href='%v'>Подробнее</a>",
		vacancy.Name, vacancy.Employer, salary, vacancy.Area, vacancy.Url)
}

func vacancyKeyboard(vacancyID string) botApi.InlineKeyboardMarkup {
	return botApi.NewInlineKeyboardMarkup(
		botApi.NewInlineKeyboardRow(
			botApi.NewInlineKeyboardButtonData("📄 Резюме", resumeCallbackPrefix+vacancyID),
			botApi.NewInlineKeyboardButtonData("✉️ Письмо", coverCallbackPrefix+vacancyID),
			botApi.NewInlineKeyboardButtonData("❌ Неинтересно", skipCallbackPrefix+vacancyID),
		),
	)
}

func navigationKeyboard(page services.Page) botApi.InlineKeyboardMarkup {

	back, forward := noopCallback, noopCallback
	if page.Number > 1 {
		back = pageCallbackPrefix + strconv.Itoa(page.Number-1)
	}
	if page.Number < page.Total {
		forward = pageCallbackPrefix + strconv.Itoa(page.Number+1)
	}

	return botApi.NewInlineKeyboardMarkup(
		botApi.NewInlineKeyboardRow(
			botApi.NewInlineKeyboardButtonData("◀️ Назад", back),
			botApi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page.Number, page.Total), noopCallback),
			botApi.NewInlineKeyboardButtonData("▶️ Вперёд", forward),
		),
	)
}

func (b *Bot) handleCallback(query *botApi.CallbackQuery) {

	if query.Message == nil {
		b.answerCallback(query.ID, "Не удалось получить информацию о чате.")
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case data == noopCallback:
		b.answerCallback(query.ID, "")
	case strings.HasPrefix(data, pageCallbackPrefix):
		b.handlePageCallback(query.ID, userID, chatID, strings.TrimPrefix(data, pageCallbackPrefix))
	case strings.HasPrefix(data, resumeCallbackPrefix):
		b.handleGenerateCallback(query.ID, userID, chatID, strings.TrimPrefix(data, resumeCallbackPrefix), generateResume)
	case strings.HasPrefix(data, coverCallbackPrefix):
		b.handleGenerateCallback(query.ID, userID, chatID, strings.TrimPrefix(data, coverCallbackPrefix), generateCoverLetter)
	case strings.HasPrefix(data, skipCallbackPrefix):
		b.answerCallback(query.ID, "✅ Вакансия помечена как неинтересная")
	default:
		b.answerCallback(query.ID, "Некорректные данные.")
	}
}

func (b *Bot) handlePageCallback(callbackID string, userID, chatID int64, rawPageNumber string) {

	pageNumber, err := strconv.Atoi(rawPageNumber)
	if err != nil {
		b.answerCallback(callbackID, "Некорректный номер страницы.")
		return
	}

	page, err := b.sessions.GoToPage(userID, pageNumber)
	switch {
	case errors.Is(err, services.ErrStaleSession):
		b.answerCallback(callbackID, "Данные устарели. Запросите вакансии заново.")
		return
	case errors.Is(err, services.ErrPageOutOfRange):
		b.answerCallback(callbackID, "Некорректный номер страницы.")
		return
	case err != nil:
		log.Error(err)
		b.answerCallback(callbackID, "Внутренняя ошибка!")
		return
	}

	b.answerCallback(callbackID, "")
	b.sendPage(chatID, page)
}

type generationKind int

const (
	generateResume generationKind = iota
	generateCoverLetter
)

func (b *Bot) handleGenerateCallback(callbackID string, userID, chatID int64, vacancyID string, kind generationKind) {

	vacancy, found := b.sessions.FindVacancy(userID, vacancyID)
	if !found {
		b.answerCallback(callbackID, "❌ Вакансия не найдена. Запросите вакансии заново.")
		return
	}

	b.answerCallback(callbackID, "Генерирую, это может занять до минуты...")

	var text string
	var err error
	header := ""

	if kind == generateResume {
		text, err = b.generator.Resume(context.Background(), userID, vacancy)
		header = "📄 <b>Сгенерированное резюме:</b>\n\n"
	} else {
		text, err = b.generator.CoverLetter(context.Background(), userID, vacancy)
		header = "✉️ <b>Сгенерированное сопроводительное письмо:</b>\n\n"
	}

	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		b.sendText(chatID, "❌ Профиль не найден. Заполните его через \""+profileCommandName+"\".")
		return
	case err != nil:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeLlmApi).Error(err)
		b.sendText(chatID, "❌ Не удалось сгенерировать текст. Проверьте настройки LLM.")
		return
	}

	msg := botApi.NewMessage(chatID, header+text)
	msg.ParseMode = botApi.ModeHTML
	_, _ = sendWithLogError(b.api, msg)
}

func (b *Bot) answerCallback(callbackID string, text string) {
	if _, err := b.api.Request(botApi.NewCallback(callbackID, text)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while answering callback: %v", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	_, _ = sendWithLogError(b.api, botApi.NewMessage(chatID, text))
}
