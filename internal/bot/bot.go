package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/mkravets/hh-assistant/internal/events"
	"github.com/mkravets/hh-assistant/internal/services"
	log "github.com/sirupsen/logrus"
	"slices"
)

type Repositories struct {
	Users       usersRepository
	Filters     filtersRepository
	LLMSettings llmSettingsRepository
	Data        dataRepository
}

type dataRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	LoadAndRemove(ctx context.Context, id string) ([]byte, error)
}

type usersRepository interface {
	Upsert(ctx context.Context, user models.User) error
}

type filtersRepository interface {
	Upsert(ctx context.Context, filters models.SearchFilters) error
}

type llmSettingsRepository interface {
	Upsert(ctx context.Context, settings models.LLMSettings) error
}

type vacancySearcher interface {
	Run(ctx context.Context, userID int64) (services.SearchResult, error)
}

type textGenerator interface {
	Resume(ctx context.Context, userID int64, vacancy models.Vacancy) (string, error)
	CoverLetter(ctx context.Context, userID int64, vacancy models.Vacancy) (string, error)
}

type Bot struct {
	api          *botApi.BotAPI
	userContexts map[int64]*userContext
	bus          EventBus.Bus
	repositories Repositories
	search       vacancySearcher
	sessions     *services.PagingSessions
	generator    textGenerator
}

const backToMenuCommandName = "В главное меню"

var globalCommands = []string{
	profileCommandName, searchSettingsCommandName, llmSettingsCommandName,
	vacanciesCommandName, backToMenuCommandName,
}

func NewBot(token string, bus EventBus.Bus, repositories Repositories,
	search vacancySearcher, sessions *services.PagingSessions, generator textGenerator) (*Bot, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if repositories.Users == nil {
		return nil, errors.New("users repository is nil")
	}

	if repositories.Filters == nil {
		return nil, errors.New("filters repository is nil")
	}

	if repositories.LLMSettings == nil {
		return nil, errors.New("llm settings repository is nil")
	}

	if repositories.Data == nil {
		return nil, errors.New("data repository is nil")
	}

	if search == nil {
		return nil, errors.New("vacancy searcher is nil")
	}

	if sessions == nil {
		return nil, errors.New("paging sessions is nil")
	}

	if generator == nil {
		return nil, errors.New("generator is nil")
	}

	createdBot := &Bot{
		api:          api,
		userContexts: make(map[int64]*userContext),
		bus:          bus,
		repositories: repositories,
		search:       search,
		sessions:     sessions,
		generator:    generator,
	}

	err = bus.Subscribe(events.DigestReadyTopic, createdBot.onDigestReady)
	if err != nil {
		return nil, err
	}
	return createdBot, nil
}

func (b *Bot) Run() {

	err := b.loadUserContexts()
	if err != nil {
		log.Errorf("Error loading user contexts: %v", err)
	}

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {

		if update.CallbackQuery != nil {
			go b.handleCallback(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		if update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup() {
			continue
		}

		go b.handleMessage(update.Message)
	}
}

func (b *Bot) Stop() {
	err := b.saveUserContexts()
	if err != nil {
		log.Errorf("Error saving user contexts: %v", err)
	}
}

func (b *Bot) handleMessage(message *botApi.Message) {

	cmd := message.Command()
	if cmd == "" && slices.Contains(globalCommands, message.Text) {
		cmd = message.Text
	}

	if cmd != "" {
		b.handleCommand(message.From, message.Chat, cmd)
	} else {
		b.handleInput(message.From, message.Chat, message.Text)
	}
}

func (b *Bot) handleCommand(user *botApi.User, chat *botApi.Chat, command string) {

	var response botApi.Chattable

	if b.userContexts[user.ID] == nil {
		b.userContexts[user.ID] = newUserContext(chat.ID)
	}
	var ctx = b.userContexts[user.ID]

	switch command {
	case "start":
		messageResponse := botApi.NewMessage(chat.ID,
			"Привет! Я помогу найти вакансии на hh.ru и подготовить отклики на них.")
		messageResponse.ReplyMarkup = defaultReplyKeyboard()
		response = messageResponse
		delete(b.userContexts, user.ID)
	case "profile", profileCommandName:
		ctx.RunCommand(b.createCommand(profileCommandName, user.ID), profileCommandName)
	case "settings", searchSettingsCommandName:
		ctx.RunCommand(b.createCommand(searchSettingsCommandName, user.ID), searchSettingsCommandName)
	case "llm", llmSettingsCommandName:
		ctx.RunCommand(b.createCommand(llmSettingsCommandName, user.ID), llmSettingsCommandName)
	case "vacancies", vacanciesCommandName:
		delete(b.userContexts, user.ID)
		b.showVacancies(user.ID, chat.ID)
	case backToMenuCommandName:
		messageResponse := botApi.NewMessage(chat.ID, "Вы были успешно перенесены в главное меню")
		messageResponse.ReplyMarkup = defaultReplyKeyboard()
		response = messageResponse
		delete(b.userContexts, user.ID)
	default:
		response = botApi.NewMessage(chat.ID, "Неизвестная команда!")
	}

	if response == nil {
		return
	}

	_, _ = sendWithLogError(b.api, response)
}

func (b *Bot) createCommand(name string, chatID int64) command {

	switch name {
	case profileCommandName:
		return newProfileCommand(b.api, chatID, b.repositories.Users)
	case searchSettingsCommandName:
		return newSearchSettingsCommand(b.api, chatID, b.repositories.Filters)
	case llmSettingsCommandName:
		return newLLMSettingsCommand(b.api, chatID, b.repositories.LLMSettings)
	default:
		return nil
	}
}

func (b *Bot) handleInput(user *botApi.User, chat *botApi.Chat, input string) {

	ctx := b.userContexts[user.ID]
	if ctx == nil {
		return
	}

	if ctx.HasRunningCommand() {
		ctx.OnUserInput(input)
		return
	}

	_, _ = sendWithLogError(b.api, botApi.NewMessage(chat.ID, "Ожидается команда."))
}

func (b *Bot) onDigestReady(event events.DigestReady) {

	page, err := b.sessions.Start(event.UserID, event.Vacancies)
	if err != nil {
		log.Errorf("error occured while starting digest session: %v", err)
		return
	}

	header := botApi.NewMessage(event.UserID,
		fmt.Sprintf("🗞 Ваша ежедневная подборка: %d вакансий.", len(event.Vacancies)))
	_, _ = sendWithLogError(b.api, header)

	b.sendPage(event.UserID, page)
}

func (b *Bot) saveUserContexts() error {
	data, err := json.Marshal(b.userContexts)
	if err != nil {
		return err
	}
	return b.repositories.Data.Save(context.Background(), "user_contexts", data)
}

func (b *Bot) loadUserContexts() error {
	data, err := b.repositories.Data.LoadAndRemove(context.Background(), "user_contexts")
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, &b.userContexts); err != nil {
		return err
	}

	var errs []error
	for i, ctx := range b.userContexts {

		if ctx.curCommandName == "" {
			continue
		}

		cmd := b.createCommand(ctx.curCommandName, ctx.chatID)
		if cmd == nil {
			errs = append(errs, fmt.Errorf("unknown command: %v", ctx.curCommandName))
			delete(b.userContexts, i)
			continue
		}

		saveableCmd, ok := cmd.(saveable)
		if !ok {
			ctx.ResumeCommandAfterBotRestart(cmd)
			continue
		}

		err = saveableCmd.LoadState(ctx.curCommandState)
		if err != nil {
			errs = append(errs, err)
			delete(b.userContexts, i)
			continue
		}

		ctx.ResumeCommandAfterBotRestart(cmd)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func defaultReplyKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(vacanciesCommandName),
			botApi.NewKeyboardButton(profileCommandName),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(searchSettingsCommandName),
			botApi.NewKeyboardButton(llmSettingsCommandName),
		),
	)
}

func keyboardWithExit() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(backToMenuCommandName),
		),
	)
}
