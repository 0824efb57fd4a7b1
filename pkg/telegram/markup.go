package telegram

import (
	"github.com/raykavin/orderalert/pkg/core"
	tb "gopkg.in/tucnak/telebot.v2"
)

func parseMode(format core.Format) tb.ParseMode {
	switch format {
	case core.FormatMarkdown:
		return tb.ModeMarkdown
	case core.FormatHTML:
		return tb.ModeHTML
	default:
		return tb.ModeDefault
	}
}

// sendOptions maps the message format and keyboards to telebot options
func sendOptions(message core.Message) *tb.SendOptions {
	options := &tb.SendOptions{ParseMode: parseMode(message.Format)}

	switch {
	case len(message.Inline) > 0:
		options.ReplyMarkup = &tb.ReplyMarkup{InlineKeyboard: inlineKeyboard(message.Inline)}
	case message.Edit:
	case message.Keyboard != nil:
		options.ReplyMarkup = &tb.ReplyMarkup{
			ReplyKeyboard:       replyKeyboard(message.Keyboard),
			ResizeReplyKeyboard: true,
		}
	case message.RemoveKeyboard:
		options.ReplyMarkup = &tb.ReplyMarkup{ReplyKeyboardRemove: true}
	}

	return options
}

func replyKeyboard(rows [][]string) [][]tb.ReplyButton {
	keyboard := make([][]tb.ReplyButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tb.ReplyButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tb.ReplyButton{Text: label})
		}
		keyboard = append(keyboard, buttons)
	}
	return keyboard
}

func inlineKeyboard(rows [][]core.InlineButton) [][]tb.InlineButton {
	keyboard := make([][]tb.InlineButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tb.InlineButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tb.InlineButton{Text: button.Text, Data: button.Data})
		}
		keyboard = append(keyboard, buttons)
	}
	return keyboard
}
