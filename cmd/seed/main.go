package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tourboard/internal/accounts"
	"tourboard/internal/bids"
	"tourboard/internal/requests"
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/database"
	"tourboard/internal/venues"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Tourboard Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_responses",
		"booking_inquiries",
		"shows",
		"venue_bids",
		"tour_requests",
		"venues",
		"accounts",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds accounts, venues, tour requests and a few open bids.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	accountIDs, err := s.SeedAccounts()
	if err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}

	venueIDs, err := s.SeedVenues(accountIDs)
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	requestIDs, err := s.SeedTourRequests(accountIDs)
	if err != nil {
		return fmt.Errorf("failed to seed tour requests: %w", err)
	}

	if err := s.SeedBids(requestIDs, venueIDs); err != nil {
		return fmt.Errorf("failed to seed bids: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedAccounts creates two artist logins and three venue logins.
func (s *Seeder) SeedAccounts() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding accounts...")

	accountIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	accountsData := []struct {
		key         string
		name        string
		email       string
		accountType accounts.AccountType
	}{
		{"artist1", "The Midnight Sparrows", "sparrows@example.com", accounts.AccountTypeArtist},
		{"artist2", "Glass Harbor", "glassharbor@example.com", accounts.AccountTypeArtist},
		{"venue1", "Echo Room Booking", "booking@echoroom.example.com", accounts.AccountTypeVenue},
		{"venue2", "Crescent Hall", "shows@crescenthall.example.com", accounts.AccountTypeVenue},
		{"venue3", "The Basement", "basement@example.com", accounts.AccountTypeVenue},
	}

	for _, data := range accountsData {
		account := accounts.Account{
			ID:          uuid.New(),
			Name:        data.name,
			Email:       data.email,
			Password:    string(hashedPassword),
			AccountType: data.accountType,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create account %s: %w", data.email, err)
		}

		accountIDs[data.key] = account.ID
		fmt.Printf("    ✅ Created account: %s (%s)\n", account.Email, account.AccountType)
	}

	return accountIDs, nil
}

// SeedVenues creates one venue profile per venue account.
func (s *Seeder) SeedVenues(accountIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🏟️ Seeding venues...")

	venueIDs := make(map[string]uuid.UUID)

	venuesData := []struct {
		key            string
		accountKey     string
		name           string
		city           string
		state          string
		capacity       int
		ageRestriction string
	}{
		{"echo", "venue1", "The Echo Room", "Portland", "OR", 350, "all-ages"},
		{"crescent", "venue2", "Crescent Hall", "Seattle", "WA", 800, "21+"},
		{"basement", "venue3", "The Basement", "Olympia", "WA", 120, "all-ages"},
	}

	for _, data := range venuesData {
		venue := venues.Venue{
			ID:             uuid.New(),
			AccountID:      accountIDs[data.accountKey],
			Name:           data.name,
			City:           data.city,
			State:          data.state,
			Capacity:       data.capacity,
			AgeRestriction: data.ageRestriction,
			ContactEmail:   fmt.Sprintf("booking@%s.example.com", data.key),
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
			return nil, fmt.Errorf("failed to create venue %s: %w", data.name, err)
		}

		venueIDs[data.key] = venue.ID
		fmt.Printf("    ✅ Created venue: %s (%s, %s)\n", venue.Name, venue.City, venue.State)
	}

	return venueIDs, nil
}

// SeedTourRequests creates one range request and one single-date request.
func (s *Seeder) SeedTourRequests(accountIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🎤 Seeding tour requests...")

	requestIDs := make(map[string]uuid.UUID)
	base := time.Now().AddDate(0, 2, 0).Truncate(24 * time.Hour)

	start := base
	end := base.AddDate(0, 0, 10)
	rangeRequest := requests.TourRequest{
		ID:               uuid.New(),
		ArtistID:         accountIDs["artist1"],
		ArtistName:       "The Midnight Sparrows",
		StartDate:        &start,
		EndDate:          &end,
		Flexibility:      requests.FlexibilityRoute,
		Title:            "Pacific Northwest run",
		Description:      "Ten day run down the I-5 corridor, full band.",
		Location:         "Portland / Seattle / Olympia",
		Genres:           requests.StringList{"indie rock", "dream pop"},
		ExpectedDrawMin:  80,
		ExpectedDrawMax:  200,
		Equipment:        requests.StringList{"PA", "backline"},
		GuaranteeMin:     300,
		GuaranteeMax:     800,
		AcceptsDoorDeals: true,
		Merchandising:    true,
		TravelMethod:     "van",
		Lodging:          "flexible",
		AgeRestriction:   "flexible",
		Priority:         requests.PriorityHigh,
		Status:           requests.StatusActive,
	}

	single := base.AddDate(0, 0, 20)
	singleRequest := requests.TourRequest{
		ID:             uuid.New(),
		ArtistID:       accountIDs["artist2"],
		ArtistName:     "Glass Harbor",
		RequestDate:    &single,
		Title:          "One-off album release show",
		Description:    "Release show for the new record, support TBA.",
		Location:       "Seattle",
		Genres:         requests.StringList{"shoegaze"},
		GuaranteeMin:   500,
		AgeRestriction: "21+",
		Priority:       requests.PriorityMedium,
		Status:         requests.StatusActive,
	}

	for key, req := range map[string]requests.TourRequest{"range": rangeRequest, "single": singleRequest} {
		if err := s.db.PostgreSQL.Create(&req).Error; err != nil {
			return nil, fmt.Errorf("failed to create tour request %s: %w", req.Title, err)
		}
		requestIDs[key] = req.ID
		fmt.Printf("    ✅ Created tour request: %s\n", req.Title)
	}

	return requestIDs, nil
}

// SeedBids puts two pending bids on the range request.
func (s *Seeder) SeedBids(requestIDs, venueIDs map[string]uuid.UUID) error {
	fmt.Println("  💰 Seeding bids...")

	base := time.Now().AddDate(0, 2, 2).Truncate(24 * time.Hour)

	bidsData := []struct {
		venueKey  string
		venueName string
		date      time.Time
		guarantee float64
		capacity  int
	}{
		{"echo", "The Echo Room", base, 450, 350},
		{"basement", "The Basement", base.AddDate(0, 0, 3), 250, 120},
	}

	for _, data := range bidsData {
		bid := bids.VenueBid{
			ID:            uuid.New(),
			TourRequestID: requestIDs["range"],
			VenueID:       venueIDs[data.venueKey],
			VenueName:     data.venueName,
			ProposedDate:  data.date,
			Guarantee:     data.guarantee,
			Capacity:      data.capacity,
			AgeRestriction: "all-ages",
			EquipmentProvided: bids.BoolMap{
				"pa":       true,
				"backline": false,
			},
			ShowTime: "21:00",
			Message:  "Would love to have you through, weeknights work best.",
			Status:   bids.StatusPending,
		}

		if err := s.db.PostgreSQL.Create(&bid).Error; err != nil {
			return fmt.Errorf("failed to create bid from %s: %w", data.venueName, err)
		}
		fmt.Printf("    ✅ Created bid: %s on %s\n", data.venueName, data.date.Format("2006-01-02"))
	}

	return nil
}
