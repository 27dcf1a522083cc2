package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"zavio/api"
	"zavio/services/user"
)

func (h *Handler) handleStart(ctx context.Context, svc *chatServices, chatID int64) {
	decision, err := svc.users.Bootstrap(ctx)
	if err != nil {
		h.send(chatID, "⚠️ Could not restore your session, please /login again.")
		return
	}
	if decision.Authenticated {
		h.send(chatID, fmt.Sprintf("👋 Welcome back, %s! Credits: %.2f\n\nTry /book to reserve a court or /feed to see what is going on.",
			decision.User.Name, decision.User.Credits))
		return
	}
	h.send(chatID, "👋 Welcome to Zavio! Book sports courts and follow the community feed.\n\n"+
		"Sign in with /login email password\n"+
		"or create an account with /register email password name")
}

func (h *Handler) handleLogin(ctx context.Context, svc *chatServices, chatID int64, args string) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.send(chatID, "Usage: /login email password")
		return
	}
	u, err := svc.users.Login(ctx, parts[0], parts[1])
	if err != nil {
		h.send(chatID, h.describeError(err, "Login failed"))
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Signed in as %s. Credits: %.2f", u.Name, u.Credits))
}

func (h *Handler) handleRegister(ctx context.Context, svc *chatServices, chatID int64, args string) {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		h.send(chatID, "Usage: /register email password name [phone]")
		return
	}
	input := user.RegisterInput{
		Email:    parts[0],
		Password: parts[1],
		Name:     strings.Join(parts[2:], " "),
	}
	// A trailing token that looks like a phone number is treated as one.
	if last := parts[len(parts)-1]; len(parts) > 3 && strings.HasPrefix(last, "+") {
		input.Phone = last
		input.Name = strings.Join(parts[2:len(parts)-1], " ")
	}
	u, err := svc.users.Register(ctx, input)
	if err != nil {
		h.send(chatID, h.describeError(err, "Registration failed"))
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Account created. Welcome, %s!", u.Name))
}

func (h *Handler) handleLogout(ctx context.Context, svc *chatServices, chatID int64) {
	if err := svc.users.Logout(ctx); err != nil {
		h.send(chatID, "⚠️ Could not sign you out, please try again.")
		return
	}
	h.send(chatID, "👋 Signed out. Your session on this chat was cleared.")
}

func (h *Handler) handleProfile(ctx context.Context, svc *chatServices, chatID int64) {
	u, err := svc.users.Profile(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load your profile"))
		return
	}
	text := fmt.Sprintf("👤 %s\n✉️ %s\n💰 %.2f credits", u.Name, u.Email, u.Credits)
	if len(u.Interests) > 0 {
		text += "\n🏅 " + strings.Join(u.Interests, ", ")
	}
	h.send(chatID, text)
}

func (h *Handler) handleBalance(ctx context.Context, svc *chatServices, chatID int64) {
	u, err := svc.users.Profile(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load your balance"))
		return
	}
	h.send(chatID, fmt.Sprintf("💰 You have %.2f credits.", u.Credits))
}

func (h *Handler) handleTopUp(ctx context.Context, svc *chatServices, chatID int64, args string) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(args), 64)
	if err != nil || amount <= 0 {
		h.send(chatID, "Usage: /topup amount (a positive number)")
		return
	}
	if !h.tryAcquire(chatID, "topup") {
		return
	}
	defer h.release(chatID, "topup")

	u, err := svc.users.TopUp(ctx, amount)
	if err != nil {
		h.send(chatID, h.describeError(err, "Top-up failed"))
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Credits added. New balance: %.2f", u.Credits))
}

func (h *Handler) handleInterests(ctx context.Context, svc *chatServices, chatID int64, args string) {
	interests := strings.Fields(strings.ToLower(args))
	if len(interests) == 0 {
		sports, err := svc.users.Sports(ctx)
		if err != nil {
			h.send(chatID, h.describeError(err, "Could not load the sports list"))
			return
		}
		h.send(chatID, "Usage: /interests sport1 sport2 ...\nAvailable: "+strings.Join(sports, ", "))
		return
	}
	u, err := svc.users.UpdateInterests(ctx, interests)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not update your interests"))
		return
	}
	h.send(chatID, "✅ Interests updated: "+strings.Join(u.Interests, ", "))
}

// describeError turns a service error into a chat message. Connectivity
// problems and expired sessions get specific wording; everything else gets
// the fallback prefix with the server's message.
func (h *Handler) describeError(err error, fallback string) string {
	switch {
	case api.IsConnectivity(err):
		return "📡 Could not reach the server. Check your connection and try again."
	case api.IsUnauthorized(err):
		return "🔑 Your session has expired. Please /login again."
	default:
		return fmt.Sprintf("⚠️ %s: %v", fallback, err)
	}
}
