package bot

import (
	"context"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/logger"
	log "github.com/sirupsen/logrus"
)

const llmSettingsCommandName = "Настройки LLM"

type llmSettingsCommand struct {
	api                  apiInterface
	chatID               int64
	settings             llmSettingsRepository
	inputHandlers        []inputHandler
	curHandlerIndex      int
	baseURL              string
	apiKey               string
	model                string
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newLLMSettingsCommand(api apiInterface, chatID int64, settings llmSettingsRepository) *llmSettingsCommand {

	cmd := &llmSettingsCommand{api: api, chatID: chatID, settings: settings}

	baseURL := newTextInput(chatID, "Введите базовый URL OpenAI-совместимого API или \""+skipOptionName+
		"\" для https://api.openai.com/v1.", func(input string) {
		if input != skipOptionName {
			cmd.baseURL = input
		}
		cmd.curHandlerIndex++
	})

	apiKey := newTextInput(chatID, "Введите API-ключ.", func(input string) {
		cmd.apiKey = input
		cmd.curHandlerIndex++
	})

	model := newTextInput(chatID, "Введите название модели или \""+skipOptionName+"\" для модели по умолчанию.",
		func(input string) {
			if input != skipOptionName {
				cmd.model = input
			}
			cmd.curHandlerIndex++
		})

	cmd.inputHandlers = []inputHandler{baseURL, apiKey, model}
	return cmd
}

func (c *llmSettingsCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *llmSettingsCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *llmSettingsCommand) Run() {
	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *llmSettingsCommand) OnUserInput(input string) {

	previousIndex := c.curHandlerIndex
	msg := c.inputHandlers[previousIndex].HandleInput(input)

	handlerChanged := previousIndex != c.curHandlerIndex
	allHandlersFinished := c.curHandlerIndex >= len(c.inputHandlers)

	if !handlerChanged {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	if !allHandlersFinished {
		_, _ = sendWithLogError(c.api, c.inputHandlers[c.curHandlerIndex].InitMessage())
		return
	}

	c.saveSettings()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *llmSettingsCommand) saveSettings() {

	settings := models.LLMSettings{
		UserID:  c.chatID,
		BaseURL: c.baseURL,
		APIKey:  c.apiKey,
		Model:   c.model,
	}

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.settings.Upsert(context.Background(), settings); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		msg.Text = "Внутренняя ошибка!"
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	msg.Text = "Настройки LLM сохранены!"
	_, _ = sendWithLogError(c.api, msg)
}
