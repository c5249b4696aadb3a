package accounts

import "time"

// AuthResponse is returned on successful register/login
type AuthResponse struct {
	Account      AccountResponse `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
}

// AccountResponse represents account data without sensitive fields
type AccountResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AccountType string    `json:"account_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Email:       a.Email,
		AccountType: string(a.AccountType),
		CreatedAt:   a.CreatedAt,
	}
}
