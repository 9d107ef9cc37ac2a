package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"slices"
)

// choiceInput asks the user to pick one of a fixed set of options shown
// as a reply keyboard.
type choiceInput struct {
	chatID   int64
	prompt   string
	options  []string
	perRow   int
	onFinish func(choice string)
}

func newChoiceInput(chatID int64, prompt string, options []string, onFinish func(choice string)) *choiceInput {
	return &choiceInput{chatID: chatID, prompt: prompt, options: options, perRow: 2, onFinish: onFinish}
}

func (c *choiceInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(c.chatID, c.prompt)
	msg.ReplyMarkup = c.keyboard()
	return msg
}

func (c *choiceInput) HandleInput(input string) botApi.Chattable {

	if !slices.Contains(c.options, input) {
		return botApi.NewMessage(c.chatID, "Неправильный ввод 😔.")
	}

	c.onFinish(input)
	return nil
}

func (c *choiceInput) keyboard() botApi.ReplyKeyboardMarkup {

	var rows [][]botApi.KeyboardButton
	for i := 0; i < len(c.options); i += c.perRow {
		end := i + c.perRow
		if end > len(c.options) {
			end = len(c.options)
		}
		var row []botApi.KeyboardButton
		for _, option := range c.options[i:end] {
			row = append(row, botApi.NewKeyboardButton(option))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []botApi.KeyboardButton{botApi.NewKeyboardButton(backToMenuCommandName)})

	return botApi.NewReplyKeyboard(rows...)
}
