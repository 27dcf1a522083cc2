package utils

import (
	"fmt"
	"math"
)

// ClockToMinutes converts an "HH:MM" string to minutes from midnight.
func ClockToMinutes(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return h*60 + m, nil
}

// MinutesToClock converts minutes from midnight to an "HH:MM" string.
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndClock returns the "HH:MM" end time for a start time and a duration in minutes.
func EndClock(start string, duration int) (string, error) {
	mins, err := ClockToMinutes(start)
	if err != nil {
		return "", err
	}
	return MinutesToClock(mins + duration), nil
}

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
