package booking

import (
	"context"
	"testing"

	"zavio/cache"
	"zavio/datasource"
	"zavio/models"
	"zavio/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// fakeDS stubs the data source; only the methods a test wires up may be
// called, anything else panics through the embedded nil interface.
type fakeDS struct {
	datasource.DataSource

	fields       []models.Field
	availability func(fieldID int64, date string, duration int) ([]models.AvailableSlot, error)
	probed       []int

	createCalls int
	create      func(req models.BookingRequest) (*models.Booking, *models.User, error)
}

func (f *fakeDS) Fields(ctx context.Context) ([]models.Field, error) {
	return f.fields, nil
}

func (f *fakeDS) Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error) {
	f.probed = append(f.probed, duration)
	return f.availability(fieldID, date, duration)
}

func (f *fakeDS) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.User, error) {
	f.createCalls++
	return f.create(req)
}

func newTestService(ds *fakeDS, users *fakeUsers) *DefaultBookingService {
	return &DefaultBookingService{
		DS:     ds,
		Cache:  cache.New(zap.NewNop()),
		Store:  store.NewMemory(),
		Users:  users,
		ChatID: 1,
		Logger: zap.NewNop(),
	}
}

func slot(start, end string, price float64) models.AvailableSlot {
	return models.AvailableSlot{StartTime: start, EndTime: end, Price: price}
}

func TestProbeDurationsShrinkStrictlyBelowRequest(t *testing.T) {
	assert.Equal(t, []int{75, 60, 45, 30, 15}, probeDurations(90))
	assert.Equal(t, []int{45, 30, 15}, probeDurations(60))
	assert.Equal(t, []int{165, 150, 135, 120, 90, 60, 45, 30, 15}, probeDurations(180))
	assert.Empty(t, probeDurations(15))
}

func TestAvailabilityDropsMalformedSlots(t *testing.T) {
	ds := &fakeDS{availability: func(int64, string, int) ([]models.AvailableSlot, error) {
		return []models.AvailableSlot{
			slot("10:00", "11:00", 20), // valid
			slot("12:00", "11:00", 20), // start after end
			slot("13:00", "13:30", 10), // 30 min, not the requested 60
			slot("bogus", "14:00", 20), // unparseable
		}, nil
	}}
	s := newTestService(ds, nil)

	slots, err := s.Availability(context.Background(), 1, "2026-09-01", 60)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime)
}

func TestLongestAlternativeReturnsFirstNonEmptyProbe(t *testing.T) {
	ds := &fakeDS{availability: func(_ int64, _ string, duration int) ([]models.AvailableSlot, error) {
		if duration == 90 {
			return []models.AvailableSlot{
				slot("08:00", "09:30", 30),
				slot("18:00", "19:30", 30),
			}, nil
		}
		return nil, nil
	}}
	s := newTestService(ds, nil)

	alt, err := s.LongestAlternative(context.Background(), 1, "2026-09-01", 120)
	require.NoError(t, err)
	require.NotNil(t, alt)
	assert.Equal(t, 90, alt.Duration)
	assert.Equal(t, "08:00", alt.Slot.StartTime)

	// Probes ran in the documented order and stopped at the first hit.
	assert.Equal(t, []int{105, 90}, ds.probed)
}

func TestLongestAlternativeNilWhenNothingShorterFits(t *testing.T) {
	ds := &fakeDS{availability: func(int64, string, int) ([]models.AvailableSlot, error) {
		return nil, nil
	}}
	s := newTestService(ds, nil)

	alt, err := s.LongestAlternative(context.Background(), 1, "2026-09-01", 60)
	require.NoError(t, err)
	assert.Nil(t, alt)
	assert.Equal(t, []int{45, 30, 15}, ds.probed)
}
