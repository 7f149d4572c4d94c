package dtos

// CategoryRequest creates or renames a category. ParentID may be omitted or
// blank for a root category.
type CategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"`
}

// SettingsRequest carries the full settings field set; upsert semantics.
type SettingsRequest struct {
	CompanyName      string `json:"company_name" binding:"required"`
	OwnerName        string `json:"owner_name"`
	CompanyAddress   string `json:"company_address"`
	CompanyPhone     string `json:"company_phone"`
	CompanyNIP       string `json:"company_nip"`
	SMTPUserEmail    string `json:"smtp_user_emailFrom" binding:"omitempty,email"`
	EmailReceiver    string `json:"email_receiver" binding:"omitempty,email"`
	H1Title          string `json:"h1_title"`
	MottoDescription string `json:"motto_description"`
}

// ContactRequest is a customer inquiry from the storefront contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=40"`
	Message string `json:"message" binding:"required,max=4000"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
