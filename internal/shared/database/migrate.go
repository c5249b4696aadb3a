package database

import (
	"tourboard/internal/accounts"
	"tourboard/internal/bids"
	"tourboard/internal/inquiries"
	"tourboard/internal/requests"
	"tourboard/internal/shows"
	"tourboard/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accounts.Account{},
		&venues.Venue{},
		&requests.TourRequest{},
		&bids.VenueBid{},
		&shows.Show{},
		&inquiries.BookingInquiry{},
		&inquiries.BookingResponse{},
	)
}
