// Command seed resets the database to the six production apartments. It is
// destructive: existing catalog, bookings and sync state are wiped first.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/config"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/database"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

var apartments = []domain.Apartment{
	{
		ID:               "ls-art-sweet-caramel",
		Title:            "Art Sweet Caramel",
		ShortDescription: "Уютная арт-студия в карамельных тонах",
		MaxGuests:        4,
		Area:             42,
		PriceBase:        800000,
		View:             domain.ViewCity,
		Features:         []string{"wifi", "kitchen", "air_conditioning"},
	},
	{
		ID:               "ls-art-flower-kiss",
		Title:            "Art Flower Kiss",
		ShortDescription: "Романтичная студия для двоих",
		MaxGuests:        2,
		Area:             28,
		PriceBase:        700000,
		View:             domain.ViewGarden,
		Features:         []string{"wifi", "kitchen"},
	},
	{
		ID:               "ls-lux-soft-blue",
		Title:            "Lux Soft Blue",
		ShortDescription: "Просторные апартаменты с видом на море",
		MaxGuests:        4,
		Area:             55,
		PriceBase:        900000,
		View:             domain.ViewSea,
		HasTerrace:       true,
		Features:         []string{"wifi", "kitchen", "air_conditioning", "sea_view"},
	},
	{
		ID:               "ls-art-crystal-blue",
		Title:            "Art Crystal Blue",
		ShortDescription: "Светлая студия в голубых тонах",
		MaxGuests:        3,
		Area:             35,
		PriceBase:        750000,
		View:             domain.ViewCity,
		Features:         []string{"wifi", "kitchen"},
	},
	{
		ID:               "ls-lux-sunny-mood",
		Title:            "Lux Sunny Mood",
		ShortDescription: "Солнечные апартаменты с террасой",
		MaxGuests:        4,
		Area:             50,
		PriceBase:        880000,
		View:             domain.ViewGarden,
		HasTerrace:       true,
		Features:         []string{"wifi", "kitchen", "air_conditioning", "terrace"},
	},
	{
		ID:               "ls-lux-beautiful-days",
		Title:            "Lux Beautiful Days",
		ShortDescription: "Семейные апартаменты у моря",
		MaxGuests:        6,
		Area:             72,
		PriceBase:        1100000,
		View:             domain.ViewSea,
		HasTerrace:       true,
		Features:         []string{"wifi", "kitchen", "air_conditioning", "sea_view", "terrace"},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	for _, table := range []string{
		"booking_history", "bookings", "external_bookings",
		"ics_sources", "sync_logs", "export_tokens", "apartments",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("wipe %s: %v", table, err)
		}
	}

	ctx := context.Background()
	repo := repository.NewApartmentRepository(db)
	for i := range apartments {
		apt := apartments[i]
		apt.IsActive = true
		if apt.Images == nil {
			apt.Images = []string{}
		}
		if err := repo.Create(ctx, &apt); err != nil {
			log.Fatalf("seed %s: %v", apt.ID, err)
		}
		log.Printf("seeded %s (%s)", apt.ID, apt.Title)
	}

	log.Printf("done: %d apartments", len(apartments))
}
