package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dandanapp/dandanbot/pkg/conversation"
)

// replyMarkup translates a Reply's keyboard instructions to the Bot API
// representation. Returns nil when the reply leaves the keyboard as is.
func replyMarkup(reply conversation.Reply) interface{} {
	switch {
	case len(reply.InlineButtons) > 0:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.InlineButtons))
		for _, btn := range reply.InlineButtons {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data),
			))
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)

	case len(reply.Keyboard) > 0:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(reply.Keyboard))
		for _, row := range reply.Keyboard {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, buttons)
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = true
		return markup

	case reply.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(false)
	}

	return nil
}
