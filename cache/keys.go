package cache

import (
	"fmt"
	"time"
)

// Staleness windows per read. Cached data older than its window is served
// once more while a background refetch runs.
const (
	StaleFields       = 5 * time.Minute
	StaleUser         = 5 * time.Minute
	StaleAvailability = 30 * time.Second
	StalePosts        = time.Minute
	StaleBookings     = time.Minute
	StaleProfile      = 5 * time.Minute
)

// Semantic cache keys. A key includes every parameter that influences the
// cached result.

func FieldsKey() string { return "fields" }

func UserKey(chatID int64) string { return fmt.Sprintf("user:%d", chatID) }

func BookingsKey(chatID int64) string { return fmt.Sprintf("bookings:%d", chatID) }

// Feed entries carry the caller's like state, so they are scoped per chat.
func PostsKey(chatID int64) string { return fmt.Sprintf("posts:%d", chatID) }

func PostKey(chatID int64, postID string) string {
	return fmt.Sprintf("post:%d:%s", chatID, postID)
}

func ProfileKey(userID string) string { return "profile:" + userID }

func AvailabilityKey(fieldID int64, date string, duration int) string {
	return fmt.Sprintf("availability:%d:%s:%d", fieldID, date, duration)
}
