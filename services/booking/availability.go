package booking

import (
	"context"

	"zavio/cache"
	"zavio/models"
	"zavio/utils"

	"go.uber.org/zap"
)

// Availability queries bookable slots for (field, date, duration) through
// the cache. Server slots that violate the contract (start >= end, or a
// length different from the requested duration) are dropped.
func (s *DefaultBookingService) Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error) {
	key := cache.AvailabilityKey(fieldID, date, duration)
	return cache.Get(ctx, s.Cache, key, cache.StaleAvailability, func(ctx context.Context) ([]models.AvailableSlot, error) {
		slots, err := s.DS.Availability(ctx, fieldID, date, duration)
		if err != nil {
			return nil, err
		}
		return s.validSlots(slots, duration), nil
	})
}

func (s *DefaultBookingService) validSlots(slots []models.AvailableSlot, duration int) []models.AvailableSlot {
	out := slots[:0:0]
	for _, slot := range slots {
		length, ok := slotLength(slot)
		if !ok || length <= 0 {
			s.Logger.Warn("dropping malformed availability slot",
				zap.String("start", slot.StartTime), zap.String("end", slot.EndTime))
			continue
		}
		if length != duration {
			s.Logger.Warn("dropping slot with mismatched duration",
				zap.String("start", slot.StartTime), zap.Int("want", duration), zap.Int("got", length))
			continue
		}
		out = append(out, slot)
	}
	return out
}

func slotLength(slot models.AvailableSlot) (int, bool) {
	start, err := utils.ClockToMinutes(slot.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := utils.ClockToMinutes(slot.EndTime)
	if err != nil {
		return 0, false
	}
	return end - start, true
}

// probeDurations builds the fallback search order for a requested duration:
// three small steps down, then a fixed descending ladder, always strictly
// shorter than the request and at least 15 minutes.
func probeDurations(requested int) []int {
	candidates := []int{requested - 15, requested - 30, requested - 45, 120, 90, 60, 45, 30, 15}
	seen := make(map[int]bool)
	var out []int
	for _, d := range candidates {
		if d < 15 || d >= requested || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// LongestAlternative probes progressively shorter durations until one has
// availability, then returns the single longest slot found as a suggestion
// the user can accept to shrink their request. Nil when nothing shorter is
// available either.
func (s *DefaultBookingService) LongestAlternative(ctx context.Context, fieldID int64, date string, duration int) (*Alternative, error) {
	for _, probe := range probeDurations(duration) {
		slots, err := s.Availability(ctx, fieldID, date, probe)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}
		longest := slots[0]
		longestLen, _ := slotLength(longest)
		for _, slot := range slots[1:] {
			length, _ := slotLength(slot)
			if length > longestLen {
				longest = slot
				longestLen = length
			}
		}
		return &Alternative{Duration: probe, Slot: longest}, nil
	}
	return nil, nil
}
