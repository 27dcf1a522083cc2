package datasource

import (
	"time"

	"zavio/models"
)

// SeedSports lists the sport types the platform knows about.
func SeedSports() []string {
	return []string{models.SportFootball, models.SportTennis, models.SportBasketball, models.SportPadel}
}

// SeedFields returns the demo venue catalogue.
func SeedFields() []models.Field {
	return []models.Field{
		{
			ID:           1,
			Name:         "Arena Nivy - Futbal",
			Type:         models.SportFootball,
			Location:     "Bratislava, Nivy",
			PricePerHour: 20,
			ImageURL:     "https://picsum.photos/800/400?random=1",
			Status:       "active",
			QRCodeID:     "qr-arena-nivy",
		},
		{
			ID:           2,
			Name:         "Tenis Centrum",
			Type:         models.SportTennis,
			Location:     "Košice, Juh",
			PricePerHour: 15,
			ImageURL:     "https://picsum.photos/800/400?random=2",
			Status:       "active",
			QRCodeID:     "qr-tenis-centrum",
		},
		{
			ID:           3,
			Name:         "Street Basket",
			Type:         models.SportBasketball,
			Location:     "Žilina",
			PricePerHour: 10,
			ImageURL:     "https://picsum.photos/800/400?random=3",
			Status:       "active",
			QRCodeID:     "qr-street-basket",
		},
		{
			ID:           4,
			Name:         "Padel Pro",
			Type:         models.SportPadel,
			Location:     "Bratislava, Rača",
			PricePerHour: 24,
			ImageURL:     "https://picsum.photos/800/400?random=4",
			Status:       "active",
			QRCodeID:     "qr-padel-pro",
		},
	}
}

// SeedUser returns the demo account used by the offline generation.
func SeedUser() models.User {
	return models.User{
		ID:        "me",
		Name:      "Martin Novák",
		Email:     "martin@example.com",
		Avatar:    "https://picsum.photos/100/100?random=7",
		Credits:   150,
		Interests: []string{models.SportFootball, models.SportPadel, models.SportTennis},
	}
}

// SeedPosts returns a starting feed for the offline generation.
func SeedPosts() []models.Post {
	now := time.Now().Unix()
	return []models.Post{
		{
			ID:        "p1",
			UserID:    "u2",
			UserName:  "Jano Hráč",
			Content:   "Hľadám spoluhráčov na futbal dnes večer, Arena Nivy. Kto ide?",
			Timestamp: now - 3600,
			Likes:     3,
		},
		{
			ID:        "p2",
			UserID:    "u3",
			UserName:  "Petra Tenisová",
			Content:   "Nový kurt v Tenis Centrum je výborný, odporúčam!",
			Image:     "https://picsum.photos/800/400?random=12",
			Timestamp: now - 7200,
			Likes:     5,
		},
	}
}
