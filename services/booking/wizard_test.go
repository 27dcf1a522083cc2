package booking

import (
	"context"
	"errors"
	"testing"

	"zavio/cache"
	"zavio/models"
	"zavio/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsers satisfies user.UserService; only Profile and SetCredits are
// exercised by the booking workflow.
type fakeUsers struct {
	user.UserService

	profile    models.User
	setCredits []float64
}

func (f *fakeUsers) Profile(ctx context.Context) (*models.User, error) {
	u := f.profile
	return &u, nil
}

func (f *fakeUsers) SetCredits(ctx context.Context, credits float64) error {
	f.setCredits = append(f.setCredits, credits)
	return nil
}

func testCourts() []models.Field {
	return []models.Field{
		{ID: 1, Name: "Arena Nivy - Futbal", PricePerHour: 20},
		{ID: 2, Name: "Tenis Centrum", PricePerHour: 15},
	}
}

func TestWizardHappyPath(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		fields: testCourts(),
		availability: func(int64, string, int) ([]models.AvailableSlot, error) {
			return []models.AvailableSlot{
				slot("10:00", "11:00", 20),
				slot("14:00", "15:00", 20),
			}, nil
		},
		create: func(req models.BookingRequest) (*models.Booking, *models.User, error) {
			return &models.Booking{
					ID: "b1", FieldID: req.FieldID, Date: req.Date,
					StartTime: req.StartTime, EndTime: "15:00",
					Duration: req.Duration, Status: models.BookingConfirmed, Price: 20,
				},
				&models.User{ID: "u1", Credits: 130}, nil
		},
	}
	users := &fakeUsers{profile: models.User{ID: "u1", Credits: 150}}
	s := newTestService(ds, users)

	w, err := s.StartWizard(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepCourt, w.Step)
	assert.Equal(t, 60, w.Duration)

	w, err = s.SelectField(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StepPrefs, w.Step)
	assert.Equal(t, "Arena Nivy - Futbal", w.FieldName)

	w, err = s.SetDate(ctx, "2026-09-01")
	require.NoError(t, err)
	w, err = s.SetDuration(ctx, 60)
	require.NoError(t, err)

	w, err = s.FindTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepTime, w.Step)
	assert.Equal(t, "10:00", w.Selected, "first slot is auto-selected")

	w, err = s.SelectTime(ctx, "14:00")
	require.NoError(t, err)

	quote, err := s.Quote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "14:00", quote.StartTime)
	assert.InDelta(t, 20.0, quote.Price, 0.001)

	created, err := s.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b1", created.ID)
	assert.Equal(t, 1, ds.createCalls)

	// The server-reported balance is adopted as the new local truth.
	require.Len(t, users.setCredits, 1)
	assert.InDelta(t, 130.0, users.setCredits[0], 0.001)

	// Confirm resets the workflow.
	_, err = s.CurrentWizard(ctx)
	assert.True(t, IsStateError(err))
}

func TestConfirmBlocksOnInsufficientCreditsWithoutNetworkCall(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		fields: testCourts(),
		availability: func(int64, string, int) ([]models.AvailableSlot, error) {
			return []models.AvailableSlot{slot("10:00", "11:00", 15)}, nil
		},
		create: func(models.BookingRequest) (*models.Booking, *models.User, error) {
			return nil, nil, errors.New("must not be called")
		},
	}
	users := &fakeUsers{profile: models.User{ID: "u1", Credits: 10}}
	s := newTestService(ds, users)

	_, err := s.StartWizard(ctx)
	require.NoError(t, err)
	_, err = s.SelectField(ctx, 2)
	require.NoError(t, err)
	_, err = s.SetDate(ctx, "2026-09-01")
	require.NoError(t, err)
	_, err = s.FindTimes(ctx)
	require.NoError(t, err)

	_, err = s.Confirm(ctx)
	var credits *InsufficientCreditsError
	require.ErrorAs(t, err, &credits)
	assert.InDelta(t, 15.0, credits.Required, 0.001)
	assert.InDelta(t, 10.0, credits.Available, 0.001)

	assert.Zero(t, ds.createCalls, "the booking request never goes out")

	// The negotiation stays resumable for a retry after /topup.
	w, err := s.CurrentWizard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10:00", w.Selected)
}

func TestFindTimesReselectsWhenPreviousPickDisappears(t *testing.T) {
	ctx := context.Background()
	available := []models.AvailableSlot{
		slot("10:00", "11:00", 20),
		slot("14:00", "15:00", 20),
	}
	ds := &fakeDS{
		fields: testCourts(),
		availability: func(int64, string, int) ([]models.AvailableSlot, error) {
			return available, nil
		},
	}
	s := newTestService(ds, nil)

	_, err := s.StartWizard(ctx)
	require.NoError(t, err)
	_, err = s.SelectField(ctx, 1)
	require.NoError(t, err)
	w, err := s.SetDate(ctx, "2026-09-01")
	require.NoError(t, err)
	_, err = s.FindTimes(ctx)
	require.NoError(t, err)
	_, err = s.SelectTime(ctx, "14:00")
	require.NoError(t, err)

	// The 14:00 slot is gone by the next query.
	available = []models.AvailableSlot{slot("10:00", "11:00", 20)}
	s.Cache.Invalidate(cache.AvailabilityKey(1, w.Date, 60))

	w, err = s.FindTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10:00", w.Selected)
}

func TestFindTimesOffersShorterAlternativeWhenEmpty(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		fields: testCourts(),
		availability: func(_ int64, _ string, duration int) ([]models.AvailableSlot, error) {
			if duration == 45 {
				return []models.AvailableSlot{slot("10:00", "10:45", 15)}, nil
			}
			return nil, nil
		},
	}
	users := &fakeUsers{profile: models.User{ID: "u1", Credits: 150}}
	s := newTestService(ds, users)

	_, err := s.StartWizard(ctx)
	require.NoError(t, err)
	_, err = s.SelectField(ctx, 1)
	require.NoError(t, err)
	_, err = s.SetDate(ctx, "2026-09-01")
	require.NoError(t, err)

	w, err := s.FindTimes(ctx)
	require.NoError(t, err)
	assert.Empty(t, w.Slots)
	assert.Empty(t, w.Selected)
	require.NotNil(t, w.Alternative)
	assert.Equal(t, 45, w.Alternative.Duration)
	assert.Equal(t, "10:00", w.Alternative.Slot.StartTime)

	// Accepting shrinks the request and lands in time selection.
	w, err = s.AcceptAlternative(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepTime, w.Step)
	assert.Equal(t, 45, w.Duration)
	assert.Equal(t, "10:00", w.Selected)
}

func TestSetDurationValidatesBoundsAndStep(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{fields: testCourts()}
	s := newTestService(ds, nil)

	_, err := s.StartWizard(ctx)
	require.NoError(t, err)
	_, err = s.SelectField(ctx, 1)
	require.NoError(t, err)

	for _, minutes := range []int{0, 10, 50, 481, 495} {
		_, err := s.SetDuration(ctx, minutes)
		assert.Error(t, err, "duration %d must be rejected", minutes)
	}
	_, err = s.SetDuration(ctx, 480)
	assert.NoError(t, err)
}

func TestWizardStepGuards(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{fields: testCourts()}
	s := newTestService(ds, nil)

	// Nothing started yet.
	_, err := s.SelectTime(ctx, "10:00")
	assert.True(t, IsStateError(err))

	_, err = s.StartWizard(ctx)
	require.NoError(t, err)

	// Date and duration need a court first.
	_, err = s.SetDate(ctx, "2026-09-01")
	assert.True(t, IsStateError(err))
	_, err = s.SetDuration(ctx, 60)
	assert.True(t, IsStateError(err))

	// Unknown court is rejected.
	_, err = s.SelectField(ctx, 99)
	assert.True(t, IsStateError(err))
}

func TestWizardSurvivesServiceRestart(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{fields: testCourts()}
	first := newTestService(ds, nil)

	_, err := first.StartWizard(ctx)
	require.NoError(t, err)
	_, err = first.SelectField(ctx, 2)
	require.NoError(t, err)

	// Same persistent store, fresh everything else.
	second := newTestService(ds, nil)
	second.Store = first.Store

	w, err := second.CurrentWizard(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepPrefs, w.Step)
	assert.Equal(t, "Tenis Centrum", w.FieldName)
}

func TestAbortDiscardsNegotiation(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{fields: testCourts()}
	s := newTestService(ds, nil)

	_, err := s.StartWizard(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Abort(ctx))

	_, err = s.CurrentWizard(ctx)
	assert.True(t, IsStateError(err))
}
