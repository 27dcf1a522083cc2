package datasource

import (
	"zavio/models"
	"zavio/utils"
)

// Venue opening window and slot grid used by the offline generation and
// the dev server.
const (
	OpenMinutes  = 8 * 60  // 08:00
	CloseMinutes = 22 * 60 // 22:00
	SlotStepMin  = 30
)

// SlotPrice computes a slot's price from the field's hourly rate.
func SlotPrice(field models.Field, duration int) float64 {
	return utils.RoundMoney(field.PricePerHour * float64(duration) / 60)
}

// BuildSlots derives the available slots for (field, date, duration):
// starts on a 30-minute grid inside opening hours, minus any interval that
// overlaps an active booking for the same field and date.
func BuildSlots(field models.Field, date string, duration int, booked []models.Booking) []models.AvailableSlot {
	if duration <= 0 {
		return nil
	}
	var slots []models.AvailableSlot
	for start := OpenMinutes; start+duration <= CloseMinutes; start += SlotStepMin {
		end := start + duration
		if overlapsBooking(field.ID, date, start, end, booked) {
			continue
		}
		slots = append(slots, models.AvailableSlot{
			StartTime: utils.MinutesToClock(start),
			EndTime:   utils.MinutesToClock(end),
			Price:     SlotPrice(field, duration),
		})
	}
	return slots
}

func overlapsBooking(fieldID int64, date string, start, end int, booked []models.Booking) bool {
	for _, b := range booked {
		if b.FieldID != fieldID || b.Date != date {
			continue
		}
		if b.Status != models.BookingConfirmed && b.Status != models.BookingPending {
			continue
		}
		bStart, err := utils.ClockToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		bEnd := bStart + b.Duration
		if start < bEnd && end > bStart {
			return true
		}
	}
	return false
}
