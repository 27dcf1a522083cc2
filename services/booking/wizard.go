package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zavio/cache"
	"zavio/models"

	"go.uber.org/zap"
)

// Wizard steps.
const (
	StepCourt = "court" // State A: pick a court
	StepPrefs = "prefs" // State B: pick date and duration
	StepTime  = "time"  // State C: pick a start time
)

// Duration bounds for the free-form picker.
const (
	MinDuration  = 15
	MaxDuration  = 480
	DurationStep = 15
)

// DurationPresets are the quick-pick duration buttons.
var DurationPresets = []int{15, 30, 45, 60, 90, 120}

// wizardTTL bounds how long an unfinished negotiation survives in the store.
const wizardTTL = 10 * time.Minute

// Wizard is the negotiation state persisted between steps. Every step is
// resumable; nothing is destructive until Confirm succeeds.
type Wizard struct {
	Step         string                 `json:"step"`
	FieldID      int64                  `json:"fieldId,omitempty"`
	FieldName    string                 `json:"fieldName,omitempty"`
	PricePerHour float64                `json:"pricePerHour,omitempty"`
	Date         string                 `json:"date,omitempty"`     // YYYY-MM-DD
	Duration     int                    `json:"duration,omitempty"` // minutes
	Slots        []models.AvailableSlot `json:"slots,omitempty"`
	Selected     string                 `json:"selected,omitempty"` // HH:MM start time
	Alternative  *Alternative           `json:"alternative,omitempty"`
}

// SelectedSlot returns the slot matching the selected start time.
func (w *Wizard) SelectedSlot() (models.AvailableSlot, bool) {
	for _, slot := range w.Slots {
		if slot.StartTime == w.Selected {
			return slot, true
		}
	}
	return models.AvailableSlot{}, false
}

func (s *DefaultBookingService) wizardKey() string {
	return fmt.Sprintf("wizard:%d", s.ChatID)
}

func (s *DefaultBookingService) loadWizard(ctx context.Context) (*Wizard, error) {
	raw, ok, err := s.Store.Get(ctx, s.wizardKey())
	if err != nil {
		return nil, fmt.Errorf("loading booking wizard: %w", err)
	}
	if !ok {
		return nil, newStateError("no booking in progress, start one first")
	}
	var w Wizard
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("parsing booking wizard: %w", err)
	}
	return &w, nil
}

func (s *DefaultBookingService) saveWizard(ctx context.Context, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshaling booking wizard: %w", err)
	}
	if err := s.Store.Set(ctx, s.wizardKey(), string(data), wizardTTL); err != nil {
		return fmt.Errorf("storing booking wizard: %w", err)
	}
	return nil
}

// StartWizard resets the negotiation to court selection with defaults of
// today and one hour.
func (s *DefaultBookingService) StartWizard(ctx context.Context) (*Wizard, error) {
	w := &Wizard{
		Step:     StepCourt,
		Date:     time.Now().Format("2006-01-02"),
		Duration: 60,
	}
	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// CurrentWizard returns the negotiation in progress, if any.
func (s *DefaultBookingService) CurrentWizard(ctx context.Context) (*Wizard, error) {
	return s.loadWizard(ctx)
}

// SelectField moves from court selection to preference entry.
func (s *DefaultBookingService) SelectField(ctx context.Context, fieldID int64) (*Wizard, error) {
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.Fields(ctx)
	if err != nil {
		return nil, err
	}
	var selected *models.Field
	for i := range fields {
		if fields[i].ID == fieldID {
			selected = &fields[i]
			break
		}
	}
	if selected == nil {
		return nil, newStateError("court %d is not in the listing", fieldID)
	}

	w.Step = StepPrefs
	w.FieldID = selected.ID
	w.FieldName = selected.Name
	w.PricePerHour = selected.PricePerHour
	w.Slots = nil
	w.Selected = ""
	w.Alternative = nil
	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SetDate updates the requested calendar date.
func (s *DefaultBookingService) SetDate(ctx context.Context, date string) (*Wizard, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	if w.Step == StepCourt {
		return nil, newStateError("pick a court first")
	}
	w.Date = date
	w.Step = StepPrefs
	w.Slots = nil
	w.Alternative = nil
	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SetDuration updates the requested duration, 15..480 in 15-minute steps.
func (s *DefaultBookingService) SetDuration(ctx context.Context, minutes int) (*Wizard, error) {
	if minutes < MinDuration || minutes > MaxDuration || minutes%DurationStep != 0 {
		return nil, fmt.Errorf("duration must be between %d and %d minutes in steps of %d",
			MinDuration, MaxDuration, DurationStep)
	}
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	if w.Step == StepCourt {
		return nil, newStateError("pick a court first")
	}
	w.Duration = minutes
	w.Step = StepPrefs
	w.Slots = nil
	w.Alternative = nil
	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// FindTimes is the explicit transition into time selection: it queries
// availability for the chosen (court, date, duration). The first slot is
// auto-selected, and re-selected whenever the previous pick is no longer
// present. With no availability at all, the fallback search proposes the
// longest slot at a shorter duration.
func (s *DefaultBookingService) FindTimes(ctx context.Context) (*Wizard, error) {
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	if w.Step == StepCourt {
		return nil, newStateError("pick a court first")
	}

	slots, err := s.Availability(ctx, w.FieldID, w.Date, w.Duration)
	if err != nil {
		return nil, err
	}
	w.Step = StepTime
	w.Slots = slots
	w.Alternative = nil

	if len(slots) == 0 {
		w.Selected = ""
		alt, err := s.LongestAlternative(ctx, w.FieldID, w.Date, w.Duration)
		if err != nil {
			s.Logger.Warn("fallback availability search failed", zap.Error(err))
		} else {
			w.Alternative = alt
		}
	} else if _, ok := w.SelectedSlot(); !ok {
		w.Selected = slots[0].StartTime
	}

	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SelectTime picks a start time from the offered slots.
func (s *DefaultBookingService) SelectTime(ctx context.Context, startTime string) (*Wizard, error) {
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	if w.Step != StepTime {
		return nil, newStateError("find available times first")
	}
	w.Selected = startTime
	if _, ok := w.SelectedSlot(); !ok {
		return nil, newStateError("time %s is not among the available slots", startTime)
	}
	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// AcceptAlternative shrinks the requested duration to the suggested
// shorter slot and re-runs the availability query.
func (s *DefaultBookingService) AcceptAlternative(ctx context.Context) (*Wizard, error) {
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	if w.Alternative == nil {
		return nil, newStateError("no shorter slot was suggested")
	}
	w.Duration = w.Alternative.Duration
	w.Selected = w.Alternative.Slot.StartTime
	if err := s.saveWizard(ctx, w); err != nil {
		return nil, err
	}
	return s.FindTimes(ctx)
}

// Quote builds the confirmation summary for the selected slot.
func (s *DefaultBookingService) Quote(ctx context.Context) (*Quote, error) {
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	slot, ok := w.SelectedSlot()
	if !ok {
		return nil, newStateError("no time selected")
	}
	return &Quote{
		FieldName: w.FieldName,
		Date:      w.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Duration:  w.Duration,
		Price:     slot.Price,
	}, nil
}

// creditEpsilon absorbs float artifacts when comparing balances to prices.
const creditEpsilon = 0.005

// Confirm checks the last-known balance against the slot price, submits the
// booking, adopts the server-reported balance, invalidates the bookings and
// user entries, and resets the workflow. A failed submission leaves the
// wizard in place for retry.
func (s *DefaultBookingService) Confirm(ctx context.Context) (*models.Booking, error) {
	w, err := s.loadWizard(ctx)
	if err != nil {
		return nil, err
	}
	slot, ok := w.SelectedSlot()
	if !ok {
		return nil, newStateError("no time selected")
	}

	current, err := s.Users.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking credit balance: %w", err)
	}
	if current.Credits+creditEpsilon < slot.Price {
		return nil, &InsufficientCreditsError{Required: slot.Price, Available: current.Credits}
	}

	created, updatedUser, err := s.DS.CreateBooking(ctx, models.BookingRequest{
		FieldID:   w.FieldID,
		Date:      w.Date,
		StartTime: slot.StartTime,
		Duration:  w.Duration,
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(cache.BookingsKey(s.ChatID), cache.UserKey(s.ChatID))
	if updatedUser != nil {
		if err := s.Users.SetCredits(ctx, updatedUser.Credits); err != nil {
			s.Logger.Warn("adopting server balance failed", zap.Error(err))
		}
	}

	if err := s.Store.Delete(ctx, s.wizardKey()); err != nil {
		s.Logger.Warn("resetting booking wizard failed", zap.Error(err))
	}
	s.Logger.Info("booking confirmed",
		zap.String("bookingID", created.ID),
		zap.Int64("fieldID", w.FieldID),
		zap.String("date", w.Date),
		zap.Float64("price", created.Price))
	return created, nil
}

// Abort discards the negotiation in progress.
func (s *DefaultBookingService) Abort(ctx context.Context) error {
	return s.Store.Delete(ctx, s.wizardKey())
}

// IsStateError reports whether err is a wrong-step usage error the user
// can fix by following the wizard.
func IsStateError(err error) bool {
	var stateErr *WizardStateError
	return errors.As(err, &stateErr)
}
