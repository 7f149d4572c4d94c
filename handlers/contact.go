package handlers

import (
	"fmt"
	"html"
	"net/http"
	"os"

	"rentatool-backend/dtos"
	"rentatool-backend/repositories"
	"rentatool-backend/utils"

	"github.com/gin-gonic/gin"
)

// Mailer is the outbound email surface the contact flow depends on.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type ContactHandler struct {
	Settings repositories.SettingsStore
	Mail     Mailer
}

// SubmitInquiry delivers a storefront contact inquiry to the business inbox.
// The recipient comes from Settings and must pass the allow-list derived
// from Settings plus the operator-configured EMAIL_ALLOWLIST; anything
// outside it is rejected before a send is attempted.
func (h *ContactHandler) SubmitInquiry(c *gin.Context) {
	var req dtos.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if settings == nil || settings.EmailReceiver == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact form is not configured"})
		return
	}

	allow := utils.BuildAllowlist(
		settings.EmailReceiver,
		settings.SMTPUserEmail,
		os.Getenv("EMAIL_ALLOWLIST"),
	)
	if !allow.Allows(settings.EmailReceiver) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact form is not configured"})
		return
	}

	subject := fmt.Sprintf("Nowe zapytanie od %s", req.Name)
	body := fmt.Sprintf(`<h2>Nowe zapytanie ze strony</h2>
<p><strong>Imię i nazwisko:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Telefon:</strong> %s</p>
<p><strong>Wiadomość:</strong></p>
<p>%s</p>`,
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Phone),
		html.EscapeString(req.Message))

	if err := h.Mail.Send(settings.EmailReceiver, subject, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}
