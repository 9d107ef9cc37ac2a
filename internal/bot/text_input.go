package bot

import botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type validation struct {
	function     func(input string) bool
	errorMessage string
}

// textInput is a single free-text step of a dialog, e.g. the salary or
// metro question of the search settings flow. Validations run in order;
// the first failing one answers with its error message and keeps the
// step active.
type textInput struct {
	chatID      int64
	initMessage string
	onFinish    func(input string)
	validations []validation
}

func newTextInput(chatID int64, initMessage string, onFinish func(input string)) *textInput {
	return &textInput{chatID: chatID, initMessage: initMessage, onFinish: onFinish}
}

func (a *textInput) AddValidation(validation validation) {
	a.validations = append(a.validations, validation)
}

func (a *textInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, a.initMessage)
	msg.ReplyMarkup = keyboardWithExit()
	return msg
}

func (a *textInput) HandleInput(input string) botApi.Chattable {

	for _, rule := range a.validations {
		if !rule.function(input) {
			return botApi.NewMessage(a.chatID, rule.errorMessage)
		}
	}

	a.onFinish(input)
	return nil
}
