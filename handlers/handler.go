// Package handlers is the Telegram frontend: command and callback routing
// on top of the user, feed and booking services. Each chat gets its own
// session and service bundle; caches and the key-value store are shared.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"zavio/api"
	"zavio/cache"
	"zavio/config"
	"zavio/datasource"
	"zavio/services/booking"
	"zavio/services/feed"
	"zavio/services/user"
	"zavio/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// awaitingInput marks that the next plain-text message from a chat belongs
// to an in-progress interaction instead of being a command.
type awaitingInput struct {
	kind   string // "comment" or "duration"
	postID string
}

type Handler struct {
	Bot    *tgbotapi.BotAPI
	Store  store.Store
	Cache  *cache.Cache
	Logger *zap.Logger

	httpc *http.Client

	mu       sync.Mutex
	locals   map[int64]*datasource.Local
	inflight map[string]bool
	awaiting map[int64]awaitingInput
}

func New(bot *tgbotapi.BotAPI, kv store.Store, c *cache.Cache, logger *zap.Logger) *Handler {
	httpc := &http.Client{}
	if config.AppConfig.HTTPTimeoutSeconds > 0 {
		httpc.Timeout = time.Duration(config.AppConfig.HTTPTimeoutSeconds) * time.Second
	}
	return &Handler{
		Bot:      bot,
		Store:    kv,
		Cache:    c,
		Logger:   logger,
		httpc:    httpc,
		locals:   make(map[int64]*datasource.Local),
		inflight: make(map[string]bool),
		awaiting: make(map[int64]awaitingInput),
	}
}

// chatServices is the per-chat service bundle.
type chatServices struct {
	session *store.Session
	users   user.UserService
	feed    feed.FeedService
	booking booking.BookingService
}

func (h *Handler) services(ctx context.Context, chatID int64) (*chatServices, error) {
	session := store.NewSession(h.Store, chatID)

	ds, err := h.dataSource(ctx, chatID, session)
	if err != nil {
		return nil, err
	}

	users := &user.DefaultUserService{DS: ds, Cache: h.Cache, Session: session, Logger: h.Logger}
	return &chatServices{
		session: session,
		users:   users,
		feed:    &feed.DefaultFeedService{DS: ds, Cache: h.Cache, ChatID: chatID, Logger: h.Logger},
		booking: &booking.DefaultBookingService{
			DS:     ds,
			Cache:  h.Cache,
			Store:  h.Store,
			Users:  users,
			ChatID: chatID,
			Logger: h.Logger,
		},
	}, nil
}

func (h *Handler) dataSource(ctx context.Context, chatID int64, session *store.Session) (datasource.DataSource, error) {
	if config.AppConfig.DataMode == "local" {
		h.mu.Lock()
		defer h.mu.Unlock()
		if local, ok := h.locals[chatID]; ok {
			return local, nil
		}
		local, err := datasource.NewLocal(ctx, session)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise local data source: %w", err)
		}
		h.locals[chatID] = local
		return local, nil
	}
	client := api.New(config.AppConfig.APIBaseURL, h.httpc, session)
	return datasource.NewRemote(client), nil
}

// tryAcquire marks a mutation as in flight for a chat. Duplicate taps on
// the same control while the first request is pending are dropped.
func (h *Handler) tryAcquire(chatID int64, op string) bool {
	key := fmt.Sprintf("%d:%s", chatID, op)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inflight[key] {
		return false
	}
	h.inflight[key] = true
	return true
}

func (h *Handler) release(chatID int64, op string) {
	key := fmt.Sprintf("%d:%s", chatID, op)
	h.mu.Lock()
	delete(h.inflight, key)
	h.mu.Unlock()
}

func (h *Handler) setAwaiting(chatID int64, in awaitingInput) {
	h.mu.Lock()
	h.awaiting[chatID] = in
	h.mu.Unlock()
}

func (h *Handler) takeAwaiting(chatID int64) (awaitingInput, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	in, ok := h.awaiting[chatID]
	if ok {
		delete(h.awaiting, chatID)
	}
	return in, ok
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.Bot.Send(msg); err != nil {
		h.Logger.Warn("failed to send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := h.Bot.Send(msg); err != nil {
		h.Logger.Warn("failed to send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}
