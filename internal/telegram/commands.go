package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
)

// handleUpdate runs on the runtime loop, so replies go out through the
// same single-threaded path as dispatched notifications.
func (r *Runtime) handleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil || !upd.Message.IsCommand() {
		return
	}
	chatID := upd.Message.Chat.ID

	switch upd.Message.Command() {
	case "start":
		name := ""
		if upd.Message.From != nil {
			name = upd.Message.From.FirstName
		}
		text := fmt.Sprintf(
			"<b>Hola, %s!</b>\n\n"+
				"<i>Donde cada pizza es una obra de arte.</i>\n\n"+
				"Explora nuestro menu, crea tu propia pizza "+
				"o pide tus favoritas. Todo a un toque de distancia!",
			name,
		)
		r.reply(chatID, text, "Hacer Mi Pedido 🍕", r.webAppLink(chatID, ""))

	case "menu":
		text := "📋 <b>Menú de Pizzería Nova</b>\n\n" +
			"Explora nuestro delicioso menú con pizzas, bebidas, postres y más!"
		r.reply(chatID, text, "Abrir Menú del Restaurante 🍕", r.webAppLink(chatID, ""))

	case "mispedidos":
		r.reply(chatID, "Toca el boton para ver el estado de tus pedidos:",
			"Ver mis Pedidos 🛒", r.webAppLink(chatID, "#mis-pedidos"))

	case "help":
		text := "🤖 <b>Comandos Disponibles:</b>\n\n" +
			"/start - Iniciar el bot\n" +
			"/menu - Abrir el menú del restaurante\n" +
			"/mispedidos - Ver el estado de mis pedidos\n" +
			"/help - Obtener ayuda"
		r.reply(chatID, text, "", "")
	}
}

func (r *Runtime) reply(chatID int64, text, btnLabel, btnURL string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if btnLabel != "" && btnURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL(btnLabel, btnURL),
			),
		)
	}
	if _, err := r.bot.Send(msg); err != nil {
		logger.Warn("command reply failed", "chat_id", chatID, "err", err)
	}
}

// webAppLink carries the chat id into the storefront so orders come
// back addressed to the right customer; the v param busts webview
// caches.
func (r *Runtime) webAppLink(chatID int64, fragment string) string {
	if r.webAppURL == "" {
		return ""
	}
	return fmt.Sprintf("%s?chat_id=%d%s&v=%d", r.webAppURL, chatID, fragment, time.Now().Unix())
}
