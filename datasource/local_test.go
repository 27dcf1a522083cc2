package datasource

import (
	"context"
	"testing"

	"zavio/models"
	"zavio/store"
	"zavio/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, *store.Session) {
	t.Helper()
	session := store.NewSession(store.NewMemory(), 1)
	l, err := NewLocal(context.Background(), session)
	require.NoError(t, err)
	return l, session
}

func TestAvailabilitySlotInvariants(t *testing.T) {
	l, _ := newTestLocal(t)

	slots, err := l.Availability(context.Background(), 1, "2026-09-01", 90)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		start, err := utils.ClockToMinutes(slot.StartTime)
		require.NoError(t, err)
		end, err := utils.ClockToMinutes(slot.EndTime)
		require.NoError(t, err)

		assert.Equal(t, 90, end-start, "slot length must match the requested duration")
		assert.Less(t, start, end)
		assert.GreaterOrEqual(t, start, OpenMinutes)
		assert.LessOrEqual(t, end, CloseMinutes)
		assert.Zero(t, (start-OpenMinutes)%SlotStepMin, "starts sit on the slot grid")
		assert.InDelta(t, 30.0, slot.Price, 0.001) // 20/h for 90 min
	}
}

func TestCreateBookingDebitsAndBlocksSlot(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	booking, user, err := l.CreateBooking(ctx, models.BookingRequest{
		FieldID: 1, Date: "2026-09-01", StartTime: "10:00", Duration: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "11:00", booking.EndTime)
	assert.InDelta(t, 20.0, booking.Price, 0.001)
	assert.InDelta(t, 130.0, user.Credits, 0.001)

	// The booked interval no longer shows up, overlaps included.
	slots, err := l.Availability(ctx, 1, "2026-09-01", 60)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.NotEqual(t, "10:00", slot.StartTime)
		assert.NotEqual(t, "10:30", slot.StartTime)
		assert.NotEqual(t, "09:30", slot.StartTime)
	}

	// A second booking of the same interval is rejected.
	_, _, err = l.CreateBooking(ctx, models.BookingRequest{
		FieldID: 1, Date: "2026-09-01", StartTime: "10:00", Duration: 60,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer available")
}

func TestCreateBookingRejectsInsufficientCredits(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	// Fresh accounts start with zero credits.
	_, err := l.Register(ctx, "new@example.com", "pw", "New Player", "")
	require.NoError(t, err)

	_, _, err = l.CreateBooking(ctx, models.BookingRequest{
		FieldID: 1, Date: "2026-09-01", StartTime: "10:00", Duration: 60,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient credits")
}

func TestCancelBookingRefunds(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	booking, _, err := l.CreateBooking(ctx, models.BookingRequest{
		FieldID: 2, Date: "2026-09-01", StartTime: "12:00", Duration: 60,
	})
	require.NoError(t, err)

	cancelled, refund, err := l.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.InDelta(t, booking.Price, refund, 0.001)

	user, err := l.Profile(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, user.Credits, 0.001)

	_, _, err = l.CancelBooking(ctx, booking.ID)
	require.Error(t, err)
}

func TestBookingsFilter(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	first, _, err := l.CreateBooking(ctx, models.BookingRequest{
		FieldID: 1, Date: "2026-09-01", StartTime: "10:00", Duration: 60,
	})
	require.NoError(t, err)
	_, _, err = l.CreateBooking(ctx, models.BookingRequest{
		FieldID: 1, Date: "2026-09-02", StartTime: "10:00", Duration: 60,
	})
	require.NoError(t, err)
	_, _, err = l.CancelBooking(ctx, first.ID)
	require.NoError(t, err)

	confirmed, err := l.Bookings(ctx, models.BookingFilter{Status: models.BookingConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "2026-09-02", confirmed[0].Date)

	byDate, err := l.Bookings(ctx, models.BookingFilter{Date: "2026-09-01"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, models.BookingCancelled, byDate[0].Status)
}

func TestLikePostToggles(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	result, err := l.LikePost(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 4, result.LikesCount)

	result, err = l.LikePost(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 3, result.LikesCount)

	post, err := l.PostDetail(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, post.LikedByMe)
}

func TestPostsPaginationMeta(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	posts, meta, err := l.Posts(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	posts, meta, err = l.Posts(ctx, 3, 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 3, meta.Page)
}

func TestBookingsSurviveReload(t *testing.T) {
	session := store.NewSession(store.NewMemory(), 1)
	ctx := context.Background()

	first, err := NewLocal(ctx, session)
	require.NoError(t, err)
	created, _, err := first.CreateBooking(ctx, models.BookingRequest{
		FieldID: 1, Date: "2026-09-01", StartTime: "10:00", Duration: 60,
	})
	require.NoError(t, err)

	second, err := NewLocal(ctx, session)
	require.NoError(t, err)
	bookings, err := second.Bookings(ctx, models.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, created.ID, bookings[0].ID)

	user, err := second.Profile(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 130.0, user.Credits, 0.001)
}
