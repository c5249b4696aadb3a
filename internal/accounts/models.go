package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AccountType distinguishes the two negotiating parties.
type AccountType string

const (
	AccountTypeArtist AccountType = "ARTIST"
	AccountTypeVenue  AccountType = "VENUE"
)

// IsValidAccountType checks a raw account type string
func IsValidAccountType(t string) bool {
	switch AccountType(t) {
	case AccountTypeArtist, AccountTypeVenue:
		return true
	}
	return false
}

// Account is a login identity for an artist or a venue operator.
type Account struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string      `gorm:"not null;size:255" json:"name"`
	Email       string      `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string      `gorm:"not null" json:"-"`
	AccountType AccountType `gorm:"type:varchar(10);not null" json:"account_type"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// JWTClaims represents JWT token claims
type JWTClaims struct {
	AccountID   string `json:"account_id"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
	Type        string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
