package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bittrader/internal/models"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Reader — то, что бот показывает по командам.
type Reader interface {
	Balances(ctx context.Context) ([]models.Balance, error)
	Signals(ctx context.Context, limit int) ([]models.Signal, error)
}

// сколько сигналов показывать по /signals
const lastSignals = 10

// Command отвечает текстом на команду бота.
type Command func(ctx context.Context) (string, error)

// Telegram — пассивный нотифайер + команды /balances, /signals и всё, что добавлено через OnCommand.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	reader Reader
	log    *zap.Logger

	mu       sync.RWMutex
	commands map[string]Command
}

func NewTelegram(token string, chatID int64, reader Reader, log *zap.Logger) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newTelegram(b, chatID, reader, log), nil
}

func newTelegram(bot *tgbot.BotAPI, chatID int64, reader Reader, log *zap.Logger) *Telegram {
	t := &Telegram{
		bot:      bot,
		chatID:   chatID,
		reader:   reader,
		log:      log.Named("telegram"),
		commands: map[string]Command{},
	}
	t.OnCommand("balances", t.balancesText)
	t.OnCommand("signals", t.signalsText)
	return t
}

// OnCommand регистрирует обработчик /name. Повторная регистрация заменяет старый.
func (t *Telegram) OnCommand(name string, fn Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commands[name] = fn
}

func (t *Telegram) command(name string) (Command, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.commands[name]
	return fn, ok
}

// run выполняет команду и возвращает ответ; false — команда неизвестна.
func (t *Telegram) run(ctx context.Context, name string) (string, bool) {
	fn, ok := t.command(name)
	if !ok {
		return "", false
	}
	text, err := fn(ctx)
	if err != nil {
		return fmt.Sprintf("❗️ Ошибка: %v", err), true
	}
	return text, true
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		t.log.Warn("send failed", zap.Error(err))
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Start: long-polling, отвечаем только своему чату.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				msg := upd.Message
				if msg == nil || msg.Chat == nil || msg.Chat.ID != t.chatID || !msg.IsCommand() {
					continue
				}
				go t.reply(ctx, msg.Command())
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.bot.StopReceivingUpdates()
}

func (t *Telegram) reply(ctx context.Context, name string) {
	text, ok := t.run(ctx, name)
	if !ok {
		t.log.Debug("unknown command", zap.String("command", name))
		return
	}
	t.Send(text)
}

func (t *Telegram) balancesText(ctx context.Context) (string, error) {
	balances, err := t.reader.Balances(ctx)
	if err != nil {
		return "", err
	}
	return FormatBalances(balances), nil
}

func (t *Telegram) signalsText(ctx context.Context) (string, error) {
	signals, err := t.reader.Signals(ctx, lastSignals)
	if err != nil {
		return "", err
	}
	return FormatSignals(signals), nil
}

func FormatBalances(balances []models.Balance) string {
	if len(balances) == 0 {
		return "📭 Балансов нет"
	}
	var b strings.Builder
	b.WriteString("💰 Балансы:\n")
	for _, x := range balances {
		mark := ""
		if !x.Purchasable {
			mark = " (нет рынка)"
		} else if x.Liquidatable {
			mark = " ✓"
		}
		fmt.Fprintf(&b, "- %s free=%.8g valued=%.2f%s\n", x.Asset, x.Free, x.Valued, mark)
	}
	return b.String()
}

func FormatSignals(signals []models.Signal) string {
	if len(signals) == 0 {
		return "📭 Сигналов нет"
	}
	var b strings.Builder
	b.WriteString("📈 Последние сигналы:\n")
	for _, s := range signals {
		fmt.Fprintf(&b, "- %s %s %s/p%d @ %.8g rsi %.2f→%.2f\n",
			s.GeneratedAt.Format("01-02 15:04"), s.Side(), s.Pair, s.Period, s.LastPrice, s.OscPrevious, s.OscLatest)
	}
	return b.String()
}

// Log — нотифайер без телеграма, пишет в лог.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log { return &Log{log: log.Named("notify")} }

func (l *Log) Send(msg string)                  { l.log.Info(msg) }
func (l *Log) Sendf(format string, args ...any) { l.log.Info(fmt.Sprintf(format, args...)) }
