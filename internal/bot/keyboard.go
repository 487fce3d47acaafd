package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

// Кнопки основного меню
const (
	btnToday    = "На сегодня"
	btnTomorrow = "На завтра"
	btnWeek     = "На неделю"
	btnLogout   = "Выйти"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("ПН"),
			tgbotapi.NewKeyboardButton("ВТ"),
			tgbotapi.NewKeyboardButton("СР"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("ЧТ"),
			tgbotapi.NewKeyboardButton("ПТ"),
			tgbotapi.NewKeyboardButton(btnToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTomorrow),
			tgbotapi.NewKeyboardButton(btnWeek),
			tgbotapi.NewKeyboardButton(btnLogout),
		),
	)
}
