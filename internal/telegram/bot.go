package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-arena/internal/game"
	"github.com/gokatarajesh/trivia-arena/internal/leaderboard"
	"github.com/gokatarajesh/trivia-arena/internal/question"
)

// Bot serves games over Telegram chats. Updates arrive on a single channel
// and are handled in order, so per-chat state needs no locking.
type Bot struct {
	api     *tgbotapi.BotAPI
	engine  *game.Engine
	scores  *leaderboard.Service
	states  map[int64]game.State
	players map[int64]uuid.UUID
	logger  zerolog.Logger
}

// NewBot authorizes against the Telegram API and prepares the chat state.
func NewBot(token string, engine *game.Engine, scores *leaderboard.Service, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		engine:  engine,
		scores:  scores,
		states:  make(map[int64]game.State),
		players: make(map[int64]uuid.UUID),
		logger:  logger.With().Str("component", "telegram_bot").Logger(),
	}, nil
}

// Run polls for updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info().Str("account", b.api.Self.UserName).Msg("bot authorized")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		switch update.Message.Command() {
		case "start":
			b.sendWelcome(update.Message.Chat.ID)
		case "jugar":
			b.applyAndRender(update.Message.Chat.ID, update.Message.From, b.engine.StartGame)
		case "terminar":
			b.applyAndRender(update.Message.Chat.ID, update.Message.From, b.engine.EndGame)
		case "puntuaciones":
			b.sendBestScores(update.Message.Chat.ID)
		default:
			b.sendMessage(update.Message.Chat.ID, "Comando desconocido. Prueba /jugar")
		}
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(callbackConfig); err != nil {
		b.logger.Warn().Err(err).Msg("callback ack failed")
	}

	switch {
	case data == "start_game":
		b.applyAndRender(chatID, callback.From, b.engine.StartGame)
	case strings.HasPrefix(data, "tier_"):
		b.handleTierPick(chatID, callback.From, data)
	case strings.HasPrefix(data, "ans_"):
		b.handleAnswerPick(chatID, callback.From, data)
	case data == "continue_game":
		b.applyAndRender(chatID, callback.From, b.engine.ContinueGame)
	case data == "end_game":
		b.applyAndRender(chatID, callback.From, b.engine.EndGame)
	case data == "scores":
		b.sendBestScores(chatID)
	case data == "menu":
		b.sendWelcome(chatID)
	default:
		b.sendMessage(chatID, "Comando desconocido.")
	}
}

func (b *Bot) handleTierPick(chatID int64, from *tgbotapi.User, data string) {
	idx, err := strconv.Atoi(strings.TrimPrefix(data, "tier_"))
	if err != nil || idx < 0 || idx >= len(question.Difficulties) {
		return
	}
	tier := question.Difficulties[idx]

	b.applyAndRender(chatID, from, func(s game.State) game.State {
		return b.engine.SelectDifficulty(s, tier)
	})
}

// handleAnswerPick maps a tapped option index back to the option text. Taps
// on an outdated question message miss the current options and are dropped.
func (b *Bot) handleAnswerPick(chatID int64, from *tgbotapi.User, data string) {
	idx, err := strconv.Atoi(strings.TrimPrefix(data, "ans_"))
	if err != nil {
		return
	}

	view := game.BuildView(b.state(chatID))
	if view.Question == nil || idx < 0 || idx >= len(view.Question.Options) {
		return
	}
	answer := view.Question.Options[idx]

	b.applyAndRender(chatID, from, func(s game.State) game.State {
		return b.engine.SubmitAnswer(s, answer)
	})
}

func (b *Bot) state(chatID int64) game.State {
	if s, ok := b.states[chatID]; ok {
		return s
	}
	return game.NewState()
}

// applyAndRender runs one event through the rules, stores the outcome and
// renders the resulting screen. Events the rules ignore re-send the screen.
func (b *Bot) applyAndRender(chatID int64, from *tgbotapi.User, event func(game.State) game.State) {
	prev := b.state(chatID)
	next := event(prev)
	b.states[chatID] = next

	if next.Phase == game.PhaseGameOver && prev.Phase != game.PhaseGameOver {
		b.recordFinishedRun(chatID, from, next)
	}

	b.renderScreen(chatID, game.BuildView(next))
}

func (b *Bot) recordFinishedRun(chatID int64, from *tgbotapi.User, s game.State) {
	playerID, ok := b.players[chatID]
	if !ok {
		playerID = uuid.New()
		b.players[chatID] = playerID
	}

	summary := game.Summarize(s)
	rank := b.scores.Record(leaderboard.RecordRequest{
		PlayerID:    playerID,
		DisplayName: displayName(from),
		Score:       summary.Score,
		Correct:     summary.Correct,
		Answered:    summary.Answered,
	})
	if rank > 0 {
		b.sendMessage(chatID, fmt.Sprintf("🎉 ¡Récord personal! Estás en el puesto %d.", rank))
	}
}

func (b *Bot) renderScreen(chatID int64, view game.View) {
	switch view.Phase {
	case game.PhaseChoosingDifficulty:
		b.sendDifficultyMenu(chatID, view)
	case game.PhaseAnswering:
		b.sendQuestion(chatID, view)
	case game.PhaseAnswered:
		b.sendFeedback(chatID, view)
	case game.PhaseGameOver:
		b.sendSummary(chatID, view)
	default:
		b.sendWelcome(chatID)
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📋 *Trivia Arena*\n\nElige la dificultad de cada pregunta y suma puntos hasta agotar la sesión.")
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Jugar", "start_game"),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Mejores puntuaciones", "scores"),
		),
	)
	b.send(msg)
}

func (b *Bot) sendDifficultyMenu(chatID int64, view game.View) {
	text := fmt.Sprintf("🎯 *Puntos: %d*\n\nElige la dificultad de la siguiente pregunta:", view.Score)

	// Exhausted tiers get no button; Telegram cannot disable them.
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, tier := range question.Difficulties {
		if view.Counts[tier] == 0 {
			continue
		}
		label := fmt.Sprintf("%s (%d)", tier, view.Counts[tier])
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("tier_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚪 Terminar partida", "end_game"),
	))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

func (b *Bot) sendQuestion(chatID int64, view game.View) {
	q := view.Question
	if q == nil {
		return
	}

	text := fmt.Sprintf("❓ *%s · %s · %d pts*\n\n%s", q.Difficulty, q.Category, q.Points, q.Prompt)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, fmt.Sprintf("ans_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚪 Terminar partida", "end_game"),
	))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

func (b *Bot) sendFeedback(chatID int64, view game.View) {
	fb := view.Feedback
	if fb == nil {
		return
	}

	var text string
	if fb.Correct {
		text = fmt.Sprintf("✅ *¡Correcto!* Llevas %d puntos.", view.Score)
	} else {
		text = fmt.Sprintf("❌ *Incorrecto.*\nLa respuesta era: %s", fb.Answer)
	}
	if fb.Explanation != "" {
		text += "\n\nℹ️ " + fb.Explanation
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Continuar", "continue_game"),
			tgbotapi.NewInlineKeyboardButtonData("🚪 Terminar", "end_game"),
		),
	)
	b.send(msg)
}

func (b *Bot) sendSummary(chatID int64, view game.View) {
	text := "🏁 *Partida terminada*"
	if view.Summary != nil {
		text = fmt.Sprintf(
			"🏁 *Partida terminada*\n\n📊 Puntos: %d\n❓ Respondidas: %d\n✅ Aciertos: %d (%.0f%%)",
			view.Summary.Score, view.Summary.Answered, view.Summary.Correct, view.Summary.Accuracy*100)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Jugar otra vez", "start_game"),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Mejores puntuaciones", "scores"),
		),
	)
	b.send(msg)
}

func (b *Bot) sendBestScores(chatID int64) {
	top := b.scores.Top(0)
	if len(top) == 0 {
		b.sendMessage(chatID, "🏆 Aún no hay puntuaciones. ¡Sé el primero! 🎯")
		return
	}

	text := "🏆 *Mejores puntuaciones*\n\n"
	for i, entry := range top {
		medal := "🔸"
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		text += fmt.Sprintf("%s %d. %s: %d pts (%.0f%%)\n", medal, i+1, entry.DisplayName, entry.Score, entry.Accuracy*100)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Jugar", "start_game"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Menú", "menu"),
		),
	)
	b.send(msg)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", msg.ChatID).Msg("send failed")
	}
}

func displayName(from *tgbotapi.User) string {
	if from == nil {
		return "Invitado"
	}
	if from.UserName != "" {
		return "@" + from.UserName
	}
	return from.FirstName
}
