package bot

import (
	"context"
	"encoding/json"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/logger"
	log "github.com/sirupsen/logrus"
)

const profileCommandName = "Мой профиль"

type profileCommand struct {
	api                  apiInterface
	chatID               int64
	users                usersRepository
	inputHandlers        []inputHandler
	curHandlerIndex      int
	fullName             string
	city                 string
	desiredPosition      string
	skills               string
	resume               string
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newProfileCommand(api apiInterface, chatID int64, users usersRepository) *profileCommand {

	cmd := &profileCommand{api: api, chatID: chatID, users: users}

	fullName := newTextInput(chatID, "Введите ваше ФИО.", func(input string) {
		cmd.fullName = input
		cmd.curHandlerIndex++
	})

	city := newTextInput(chatID, "Введите ваш город.", func(input string) {
		cmd.city = input
		cmd.curHandlerIndex++
	})

	position := newTextInput(chatID, "Введите желаемую должность. Например, \"QA Engineer\".", func(input string) {
		cmd.desiredPosition = input
		cmd.curHandlerIndex++
	})

	skills := newTextInput(chatID, "Перечислите ваши навыки через запятую.", func(input string) {
		cmd.skills = input
		cmd.curHandlerIndex++
	})

	resume := newTextInput(chatID, "Кратко опишите ваш опыт работы в свободной форме.", func(input string) {
		cmd.resume = input
		cmd.curHandlerIndex++
	})

	cmd.inputHandlers = []inputHandler{fullName, city, position, skills, resume}
	return cmd
}

func (c *profileCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *profileCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *profileCommand) SaveState() ([]byte, error) {

	type Alias profileCommand
	return json.Marshal(&struct {
		CurHandlerIndex int
		FullName        string
		City            string
		DesiredPosition string
		Skills          string
		Resume          string
		*Alias
	}{
		CurHandlerIndex: c.curHandlerIndex,
		FullName:        c.fullName,
		City:            c.city,
		DesiredPosition: c.desiredPosition,
		Skills:          c.skills,
		Resume:          c.resume,
		Alias:           (*Alias)(c),
	})
}

func (c *profileCommand) LoadState(data []byte) error {

	type Alias profileCommand
	aux := &struct {
		CurHandlerIndex int
		FullName        string
		City            string
		DesiredPosition string
		Skills          string
		Resume          string
		*Alias
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.curHandlerIndex = aux.CurHandlerIndex
	c.fullName = aux.FullName
	c.city = aux.City
	c.desiredPosition = aux.DesiredPosition
	c.skills = aux.Skills
	c.resume = aux.Resume
	return nil
}

func (c *profileCommand) Run() {
	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *profileCommand) OnUserInput(input string) {

	previousIndex := c.curHandlerIndex
	msg := c.inputHandlers[c.curHandlerIndex].HandleInput(input)

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

	c.saveProfile()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *profileCommand) saveProfile() {

	user := models.User{
		TelegramID:      c.chatID,
		FullName:        c.fullName,
		City:            c.city,
		DesiredPosition: c.desiredPosition,
		Skills:          c.skills,
		Resume:          c.resume,
	}

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.users.Upsert(context.Background(), user); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		msg.Text = "Внутренняя ошибка!"
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	msg.Text = "Профиль сохранён!"
	_, _ = sendWithLogError(c.api, msg)
}
