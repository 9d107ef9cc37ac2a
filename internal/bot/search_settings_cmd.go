package bot

import (
	"context"
	"encoding/json"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/logger"
	log "github.com/sirupsen/logrus"
	"strconv"
)

const searchSettingsCommandName = "Настройки поиска"

const skipOptionName = "Не указывать"
const anyOptionName = "Не важно"

type searchSettingsCommand struct {
	api                  apiInterface
	chatID               int64
	filters              filtersRepository
	inputHandlers        []inputHandler
	curHandlerIndex      int
	position             *string
	city                 *string
	salaryFrom           *int
	remote               *bool
	metro                *string
	freshnessDays        *int
	employment           *models.Employment
	experience           *models.Experience
	onlyDirectEmployers  *bool
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newSearchSettingsCommand(api apiInterface, chatID int64, filters filtersRepository) *searchSettingsCommand {

	cmd := &searchSettingsCommand{api: api, chatID: chatID, filters: filters}

	position := newPositionInput(chatID, func(input string) {
		if input != skipOptionName {
			cmd.position = &input
		}
		cmd.curHandlerIndex++
	})

	city := newChoiceInput(chatID, "Выберите город поиска.", hh.SupportedCities(), func(choice string) {
		cmd.city = &choice
		cmd.curHandlerIndex++
	})

	salary := newSalaryInput(chatID, func(input string) {
		if input != skipOptionName {
			salaryFrom, _ := strconv.Atoi(input)
			cmd.salaryFrom = &salaryFrom
		}
		cmd.curHandlerIndex++
	})

	remote := newChoiceInput(chatID, "Какой формат работы вас интересует?",
		[]string{"Удалённая работа", "Офис / гибрид", anyOptionName}, func(choice string) {
			switch choice {
			case "Удалённая работа":
				value := true
				cmd.remote = &value
			case "Офис / гибрид":
				value := false
				cmd.remote = &value
			}
			cmd.curHandlerIndex++
			// метро имеет смысл только для офисного формата
			if cmd.remote == nil || *cmd.remote {
				cmd.curHandlerIndex++
			}
		})

	metro := newTextInput(chatID, "Укажите станцию метро или введите \""+skipOptionName+"\".", func(input string) {
		if input != skipOptionName {
			cmd.metro = &input
		}
		cmd.curHandlerIndex++
	})

	freshness := newChoiceInput(chatID, "За какой период показывать вакансии?",
		[]string{"За 1 день", "За 2 дня", "За 3 дня", anyOptionName}, func(choice string) {
			switch choice {
			case "За 1 день":
				days := 1
				cmd.freshnessDays = &days
			case "За 2 дня":
				days := 2
				cmd.freshnessDays = &days
			case "За 3 дня":
				days := 3
				cmd.freshnessDays = &days
			}
			cmd.curHandlerIndex++
		})

	employment := newChoiceInput(chatID, "Выберите тип занятости.",
		[]string{"Полная занятость", "Частичная занятость", "Проектная работа", "Стажировка", anyOptionName},
		func(choice string) {
			if value, ok := employmentByLabel[choice]; ok {
				cmd.employment = &value
			}
			cmd.curHandlerIndex++
		})

	experience := newChoiceInput(chatID, "Выберите требуемый опыт работы.",
		[]string{"Нет опыта", "От 1 до 3 лет", "От 3 до 6 лет", "Более 6 лет", anyOptionName},
		func(choice string) {
			if value, ok := experienceByLabel[choice]; ok {
				cmd.experience = &value
			}
			cmd.curHandlerIndex++
		})

	direct := newChoiceInput(chatID, "Показывать вакансии только от прямых работодателей?",
		[]string{"Да", "Нет"}, func(choice string) {
			value := choice == "Да"
			cmd.onlyDirectEmployers = &value
			cmd.curHandlerIndex++
		})

	cmd.inputHandlers = []inputHandler{position, city, salary, remote, metro, freshness, employment, experience, direct}
	return cmd
}

var employmentByLabel = map[string]models.Employment{
	"Полная занятость":    models.FullEmployment,
	"Частичная занятость": models.PartEmployment,
	"Проектная работа":    models.ProjectEmployment,
	"Стажировка":          models.Probation,
}

var experienceByLabel = map[string]models.Experience{
	"Нет опыта":     models.NoExperience,
	"От 1 до 3 лет": models.Between1and3,
	"От 3 до 6 лет": models.Between3and6,
	"Более 6 лет":   models.MoreThan6,
}

func (c *searchSettingsCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *searchSettingsCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *searchSettingsCommand) SaveState() ([]byte, error) {

	type Alias searchSettingsCommand
	return json.Marshal(&struct {
		CurHandlerIndex     int
		Position            *string
		City                *string
		SalaryFrom          *int
		Remote              *bool
		Metro               *string
		FreshnessDays       *int
		Employment          *models.Employment
		Experience          *models.Experience
		OnlyDirectEmployers *bool
		*Alias
	}{
		CurHandlerIndex:     c.curHandlerIndex,
		Position:            c.position,
		City:                c.city,
		SalaryFrom:          c.salaryFrom,
		Remote:              c.remote,
		Metro:               c.metro,
		FreshnessDays:       c.freshnessDays,
		Employment:          c.employment,
		Experience:          c.experience,
		OnlyDirectEmployers: c.onlyDirectEmployers,
		Alias:               (*Alias)(c),
	})
}

func (c *searchSettingsCommand) LoadState(data []byte) error {

	type Alias searchSettingsCommand
	aux := &struct {
		CurHandlerIndex     int
		Position            *string
		City                *string
		SalaryFrom          *int
		Remote              *bool
		Metro               *string
		FreshnessDays       *int
		Employment          *models.Employment
		Experience          *models.Experience
		OnlyDirectEmployers *bool
		*Alias
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.curHandlerIndex = aux.CurHandlerIndex
	c.position = aux.Position
	c.city = aux.City
	c.salaryFrom = aux.SalaryFrom
	c.remote = aux.Remote
	c.metro = aux.Metro
	c.freshnessDays = aux.FreshnessDays
	c.employment = aux.Employment
	c.experience = aux.Experience
	c.onlyDirectEmployers = aux.OnlyDirectEmployers
	return nil
}

func (c *searchSettingsCommand) Run() {
	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *searchSettingsCommand) OnUserInput(input string) {

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

	c.saveFilters()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *searchSettingsCommand) saveFilters() {

	filters := models.SearchFilters{
		UserID:              c.chatID,
		Position:            c.position,
		City:                c.city,
		SalaryFrom:          c.salaryFrom,
		Remote:              c.remote,
		Metro:               c.metro,
		FreshnessDays:       c.freshnessDays,
		Employment:          c.employment,
		Experience:          c.experience,
		OnlyDirectEmployers: c.onlyDirectEmployers,
	}

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.filters.Upsert(context.Background(), filters); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		msg.Text = "Внутренняя ошибка!"
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	msg.Text = "Настройки поиска сохранены! Используйте \"" + vacanciesCommandName + "\", чтобы посмотреть результаты."
	_, _ = sendWithLogError(c.api, msg)
}

func newPositionInput(chatID int64, onFinish func(input string)) *textInput {
	return newTextInput(chatID, "Введите желаемую должность или ключевые слова. Например, \"QA\" "+
		"или \"Go OR Golang\". Введите \""+skipOptionName+"\", чтобы искать по всем должностям.", onFinish)
}

func newSalaryInput(chatID int64, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, "Укажите минимальную зарплату в рублях или введите \""+skipOptionName+"\".", onFinish)
	input.AddValidation(validation{
		function: func(input string) bool {
			if input == skipOptionName {
				return true
			}
			salary, err := strconv.Atoi(input)
			return err == nil && salary >= 0
		},
		errorMessage: "Введите неотрицательное число или \"" + skipOptionName + "\".",
	})
	return input
}
