package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds constraints the negotiation engine relies on and
// that AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// At most one accepted bid per tour request
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_accepted_bid_per_request
		ON venue_bids (tour_request_id)
		WHERE status = 'accepted';
	`).Error
	if err != nil {
		return err
	}

	// A bid produces at most one show (keeps cascade retries idempotent)
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_show_per_bid
		ON shows (bid_id)
		WHERE bid_id IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Hold positions must not collide among concurrently held bids
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_hold_position_per_request
		ON venue_bids (tour_request_id, hold_position)
		WHERE status = 'hold';
	`).Error
	if err != nil {
		return err
	}

	// Bid listings are always scoped by request or venue
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_venue_bids_request_status
		ON venue_bids (tour_request_id, status);
	`).Error
	if err != nil {
		return err
	}

	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_shows_venue_date
		ON shows (venue_id, date);
	`).Error
}
