package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"zavio/models"
	"zavio/services/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCourts(ctx context.Context, svc *chatServices, chatID int64) {
	fields, err := svc.booking.Fields(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load the courts"))
		return
	}
	var b strings.Builder
	b.WriteString("🏟 Courts:\n\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "%s (%s)\n📍 %s\n💰 %.2f credits/hour\n\n", f.Name, f.Type, f.Location, f.PricePerHour)
	}
	b.WriteString("Use /book to reserve one.")
	h.send(chatID, b.String())
}

func (h *Handler) handleBook(ctx context.Context, svc *chatServices, chatID int64) {
	if _, err := svc.booking.StartWizard(ctx); err != nil {
		h.send(chatID, h.describeError(err, "Could not start a booking"))
		return
	}
	fields, err := svc.booking.Fields(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load the courts"))
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range fields {
		label := fmt.Sprintf("%s — %.2f/h", f.Name, f.PricePerHour)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("field:%d", f.ID)),
		))
	}
	h.sendWithKeyboard(chatID, "🏟 Pick a court:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) cbSelectField(ctx context.Context, svc *chatServices, chatID int64, raw string) {
	fieldID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return
	}
	w, err := svc.booking.SelectField(ctx, fieldID)
	if err != nil {
		h.sendWizardError(chatID, err)
		return
	}
	h.sendDateKeyboard(chatID, w.FieldName)
}

func (h *Handler) sendDateKeyboard(chatID int64, fieldName string) {
	var rows [][]tgbotapi.InlineKeyboardButton
	now := time.Now()
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		label := day.Format("Mon 02 Jan")
		if i == 0 {
			label = "Today"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "date:"+date),
		))
	}
	h.sendWithKeyboard(chatID, fmt.Sprintf("📅 %s — pick a date:", fieldName),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) cbSelectDate(ctx context.Context, svc *chatServices, chatID int64, date string) {
	if _, err := svc.booking.SetDate(ctx, date); err != nil {
		h.sendWizardError(chatID, err)
		return
	}
	h.sendDurationKeyboard(chatID)
}

func (h *Handler) sendDurationKeyboard(chatID int64) {
	var row []tgbotapi.InlineKeyboardButton
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range booking.DurationPresets {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d min", d), fmt.Sprintf("dur:%d", d)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Other…", "durx")))
	h.sendWithKeyboard(chatID, "⏱ How long do you want to play?",
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) cbSelectDuration(ctx context.Context, svc *chatServices, chatID int64, raw string) {
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	h.applyDuration(ctx, svc, chatID, minutes)
}

func (h *Handler) submitCustomDuration(ctx context.Context, svc *chatServices, chatID int64, text string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		h.send(chatID, "Please send a number of minutes, e.g. 75.")
		return
	}
	h.applyDuration(ctx, svc, chatID, minutes)
}

func (h *Handler) applyDuration(ctx context.Context, svc *chatServices, chatID int64, minutes int) {
	if _, err := svc.booking.SetDuration(ctx, minutes); err != nil {
		h.sendWizardError(chatID, err)
		return
	}
	w, err := svc.booking.FindTimes(ctx)
	if err != nil {
		h.sendWizardError(chatID, err)
		return
	}
	h.renderTimes(ctx, svc, chatID, w)
}

func (h *Handler) renderTimes(ctx context.Context, svc *chatServices, chatID int64, w *booking.Wizard) {
	if len(w.Slots) == 0 {
		if w.Alternative != nil {
			alt := w.Alternative
			text := fmt.Sprintf("😕 No free slots for %d minutes on %s.\n\n"+
				"The longest free slot is %d minutes at %s for %.2f credits. Take it?",
				w.Duration, w.Date, alt.Duration, alt.Slot.StartTime, alt.Slot.Price)
			keyboard := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("✅ Yes, take it", "suggest"),
					tgbotapi.NewInlineKeyboardButtonData("❌ No", "abort"),
				),
			)
			h.sendWithKeyboard(chatID, text, keyboard)
			return
		}
		h.send(chatID, fmt.Sprintf("😕 Nothing free on %s, not even a shorter slot. Try another date with /book.", w.Date))
		return
	}

	var row []tgbotapi.InlineKeyboardButton
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, slot := range w.Slots {
		label := slot.StartTime
		if slot.StartTime == w.Selected {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "time:"+slot.StartTime))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", "confirm"),
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "abort"),
	))

	quote, err := svc.booking.Quote(ctx)
	text := fmt.Sprintf("🕐 Free times on %s (%d min):", w.Date, w.Duration)
	if err == nil {
		text = fmt.Sprintf("🕐 Free times on %s (%d min).\n\nSelected: %s–%s for %.2f credits.\nTap a time to change, or confirm.",
			quote.Date, quote.Duration, quote.StartTime, quote.EndTime, quote.Price)
	}
	h.sendWithKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) cbSelectTime(ctx context.Context, svc *chatServices, chatID int64, startTime string) {
	w, err := svc.booking.SelectTime(ctx, startTime)
	if err != nil {
		h.sendWizardError(chatID, err)
		return
	}
	h.renderTimes(ctx, svc, chatID, w)
}

func (h *Handler) cbAcceptAlternative(ctx context.Context, svc *chatServices, chatID int64) {
	w, err := svc.booking.AcceptAlternative(ctx)
	if err != nil {
		h.sendWizardError(chatID, err)
		return
	}
	h.renderTimes(ctx, svc, chatID, w)
}

func (h *Handler) cbConfirm(ctx context.Context, svc *chatServices, chatID int64) {
	if !h.tryAcquire(chatID, "confirm") {
		return
	}
	defer h.release(chatID, "confirm")

	created, err := svc.booking.Confirm(ctx)
	if err != nil {
		var credits *booking.InsufficientCreditsError
		if errors.As(err, &credits) {
			h.send(chatID, fmt.Sprintf("💳 Not enough credits: this slot costs %.2f and you have %.2f.\nUse /topup to add credits.",
				credits.Required, credits.Available))
			return
		}
		h.sendWizardError(chatID, err)
		return
	}
	h.send(chatID, fmt.Sprintf("🎉 Booked! %s on %s, %s–%s.\nShow the venue QR scanner your /games entry to get in.",
		created.FieldName, created.Date, created.StartTime, created.EndTime))
}

func (h *Handler) cbAbort(ctx context.Context, svc *chatServices, chatID int64) {
	if err := svc.booking.Abort(ctx); err != nil {
		h.send(chatID, "⚠️ Could not discard the booking in progress.")
		return
	}
	h.send(chatID, "Booking discarded. Start again anytime with /book.")
}

func (h *Handler) handleGames(ctx context.Context, svc *chatServices, chatID int64) {
	bookings, err := svc.booking.Bookings(ctx, models.BookingFilter{})
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load your bookings"))
		return
	}
	if len(bookings) == 0 {
		h.send(chatID, "You have no bookings yet. Reserve a court with /book.")
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	var b strings.Builder
	b.WriteString("📋 Your games:\n\n")
	for _, bk := range bookings {
		fmt.Fprintf(&b, "%s — %s %s–%s (%s, %.2f credits)\n",
			bk.FieldName, bk.Date, bk.StartTime, bk.EndTime, bk.Status, bk.Price)
		if bk.Status == models.BookingConfirmed || bk.Status == models.BookingPending {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("❌ Cancel %s %s", bk.Date, bk.StartTime), "cxl:"+bk.ID)))
		}
	}
	if len(rows) == 0 {
		h.send(chatID, b.String())
		return
	}
	h.sendWithKeyboard(chatID, b.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) cbCancelBooking(ctx context.Context, svc *chatServices, chatID int64, bookingID string) {
	if !h.tryAcquire(chatID, "cancel:"+bookingID) {
		return
	}
	defer h.release(chatID, "cancel:"+bookingID)

	cancelled, refund, err := svc.booking.CancelBooking(ctx, bookingID)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not cancel the booking"))
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Cancelled %s on %s. Refunded %.2f credits.",
		cancelled.FieldName, cancelled.Date, refund))
}

func (h *Handler) handleScan(ctx context.Context, svc *chatServices, chatID int64, args string) {
	code := strings.TrimSpace(args)
	if code == "" {
		h.send(chatID, "Usage: /scan code (the identifier under the venue QR code)")
		return
	}
	result, err := svc.booking.ValidateQR(ctx, code)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not validate the code"))
		return
	}
	if result.AccessGranted {
		h.send(chatID, fmt.Sprintf("✅ %s\n🏟 %s", result.Message, result.Field.Name))
		return
	}
	h.send(chatID, fmt.Sprintf("⛔ %s\n🏟 %s", result.Message, result.Field.Name))
}

// sendWizardError maps wizard usage errors to gentle guidance and the rest
// to the generic error wording.
func (h *Handler) sendWizardError(chatID int64, err error) {
	if booking.IsStateError(err) {
		h.send(chatID, fmt.Sprintf("🤔 %v. Use /book to go through the steps.", err))
		return
	}
	h.send(chatID, h.describeError(err, "Booking step failed"))
}
