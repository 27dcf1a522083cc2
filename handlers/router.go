package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleUpdate is the single entry point for the update loop.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !msg.IsCommand() {
		if in, ok := h.takeAwaiting(chatID); ok {
			h.handleAwaited(ctx, chatID, in, msg.Text)
			return
		}
		h.send(chatID, "I did not get that. Try /help for the list of commands.")
		return
	}

	svc, err := h.services(ctx, chatID)
	if err != nil {
		h.Logger.Error("failed to build services", zap.Int64("chatID", chatID), zap.Error(err))
		h.send(chatID, "⚠️ Something went wrong, please try again.")
		return
	}

	args := msg.CommandArguments()
	switch msg.Command() {
	case "start":
		h.handleStart(ctx, svc, chatID)
	case "help":
		h.handleHelp(chatID)
	case "login":
		h.handleLogin(ctx, svc, chatID, args)
	case "register":
		h.handleRegister(ctx, svc, chatID, args)
	case "logout":
		h.handleLogout(ctx, svc, chatID)
	case "profile":
		h.handleProfile(ctx, svc, chatID)
	case "balance":
		h.handleBalance(ctx, svc, chatID)
	case "topup":
		h.handleTopUp(ctx, svc, chatID, args)
	case "interests":
		h.handleInterests(ctx, svc, chatID, args)
	case "courts":
		h.handleCourts(ctx, svc, chatID)
	case "book":
		h.handleBook(ctx, svc, chatID)
	case "cancel":
		h.cbAbort(ctx, svc, chatID)
	case "games":
		h.handleGames(ctx, svc, chatID)
	case "feed":
		h.handleFeed(ctx, svc, chatID)
	case "post":
		h.handlePost(ctx, svc, chatID, args)
	case "comment":
		h.handleComment(ctx, svc, chatID, args)
	case "scan":
		h.handleScan(ctx, svc, chatID, args)
	default:
		h.send(chatID, "Unknown command. Try /help.")
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	data := cb.Data

	// Acknowledge the tap right away so the client stops its spinner.
	if _, err := h.Bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.Logger.Debug("callback ack failed", zap.Error(err))
	}

	svc, err := h.services(ctx, chatID)
	if err != nil {
		h.Logger.Error("failed to build services", zap.Int64("chatID", chatID), zap.Error(err))
		h.send(chatID, "⚠️ Something went wrong, please try again.")
		return
	}

	switch {
	case strings.HasPrefix(data, "field:"):
		h.cbSelectField(ctx, svc, chatID, strings.TrimPrefix(data, "field:"))
	case strings.HasPrefix(data, "date:"):
		h.cbSelectDate(ctx, svc, chatID, strings.TrimPrefix(data, "date:"))
	case strings.HasPrefix(data, "dur:"):
		h.cbSelectDuration(ctx, svc, chatID, strings.TrimPrefix(data, "dur:"))
	case data == "durx":
		h.setAwaiting(chatID, awaitingInput{kind: "duration"})
		h.send(chatID, "Send the duration in minutes (15 to 480, in steps of 15).")
	case strings.HasPrefix(data, "time:"):
		h.cbSelectTime(ctx, svc, chatID, strings.TrimPrefix(data, "time:"))
	case data == "suggest":
		h.cbAcceptAlternative(ctx, svc, chatID)
	case data == "confirm":
		h.cbConfirm(ctx, svc, chatID)
	case data == "abort":
		h.cbAbort(ctx, svc, chatID)
	case strings.HasPrefix(data, "like:"):
		h.cbLikePost(ctx, svc, chatID, strings.TrimPrefix(data, "like:"))
	case strings.HasPrefix(data, "clike:"):
		h.cbLikeComment(ctx, svc, chatID, strings.TrimPrefix(data, "clike:"))
	case strings.HasPrefix(data, "cmt:"):
		h.setAwaiting(chatID, awaitingInput{kind: "comment", postID: strings.TrimPrefix(data, "cmt:")})
		h.send(chatID, "Send your comment as a message.")
	case strings.HasPrefix(data, "detail:"):
		h.cbPostDetail(ctx, svc, chatID, strings.TrimPrefix(data, "detail:"))
	case data == "more":
		h.cbLoadMore(ctx, svc, chatID)
	case data == "refresh":
		h.cbRefreshFeed(ctx, svc, chatID)
	case strings.HasPrefix(data, "cxl:"):
		h.cbCancelBooking(ctx, svc, chatID, strings.TrimPrefix(data, "cxl:"))
	default:
		h.Logger.Debug("unknown callback", zap.String("data", data))
	}
}

func (h *Handler) handleAwaited(ctx context.Context, chatID int64, in awaitingInput, text string) {
	svc, err := h.services(ctx, chatID)
	if err != nil {
		h.Logger.Error("failed to build services", zap.Int64("chatID", chatID), zap.Error(err))
		h.send(chatID, "⚠️ Something went wrong, please try again.")
		return
	}
	switch in.kind {
	case "comment":
		h.submitComment(ctx, svc, chatID, in.postID, text)
	case "duration":
		h.submitCustomDuration(ctx, svc, chatID, text)
	}
}

func (h *Handler) handleHelp(chatID int64) {
	h.send(chatID, "Available commands:\n"+
		"/login email password — sign in\n"+
		"/register email password name [phone] — create an account\n"+
		"/logout — sign out\n"+
		"/profile — my profile\n"+
		"/balance — my credit balance\n"+
		"/topup amount — add credits\n"+
		"/interests sport1 sport2 ... — set my sports\n"+
		"/courts — browse courts\n"+
		"/book — book a court\n"+
		"/cancel — discard the booking in progress\n"+
		"/games — my bookings\n"+
		"/feed — community feed\n"+
		"/post text — share a post\n"+
		"/comment postID text — comment on a post\n"+
		"/scan code — validate a venue QR code")
}
