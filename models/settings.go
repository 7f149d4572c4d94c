package models

import "time"

// Settings is the singleton business-settings record driving site copy and
// the outbound email allow-list. Field names follow the stored document keys.
type Settings struct {
	ID               string    `json:"id"`
	CompanyName      string    `json:"company_name"`
	OwnerName        string    `json:"owner_name"`
	CompanyAddress   string    `json:"company_address"`
	CompanyPhone     string    `json:"company_phone"`
	CompanyNIP       string    `json:"company_nip,omitempty"`
	SMTPUserEmail    string    `json:"smtp_user_emailFrom"`
	EmailReceiver    string    `json:"email_receiver"`
	H1Title          string    `json:"h1_title"`
	MottoDescription string    `json:"motto_description"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
