package inquiries

import "time"

type CreateInquiryRequest struct {
	ToAccountID  string     `json:"to_account_id" binding:"required,uuid"`
	Subject      string     `json:"subject" binding:"required,min=2,max=255"`
	Message      string     `json:"message" binding:"required,min=1"`
	ProposedDate *time.Time `json:"proposed_date"`
}

type RespondRequest struct {
	Message string `json:"message" binding:"required,min=1"`
}

type ResolveInquiryRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}
