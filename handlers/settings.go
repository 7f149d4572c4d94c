package handlers

import (
	"net/http"
	"time"

	"rentatool-backend/apperrors"
	"rentatool-backend/dtos"
	"rentatool-backend/models"
	"rentatool-backend/repositories"
	"rentatool-backend/utils"

	"github.com/gin-gonic/gin"
)

// SettingsTTL bounds how stale the public settings read may get. Admin
// updates invalidate the cache immediately, so the TTL only matters across
// separately deployed instances.
const SettingsTTL = time.Minute

type SettingsHandler struct {
	Settings repositories.SettingsStore

	cache utils.TTLCache[models.Settings]
	now   func() time.Time
}

func NewSettingsHandler(settings repositories.SettingsStore) *SettingsHandler {
	return &SettingsHandler{Settings: settings, now: time.Now}
}

// GetSettings serves the site copy both apps render. Reads go through the
// TTL cache; the settings record changes rarely and is fetched on every
// page load.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	now := h.now()
	if !h.cache.IsStale(SettingsTTL, now) {
		cached, _, _ := h.cache.Get()
		c.JSON(http.StatusOK, cached)
		return
	}

	settings, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if settings == nil {
		respondError(c, apperrors.NotFound("settings"))
		return
	}

	h.cache.Set(*settings, now)
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dtos.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	settings, err := h.Settings.Upsert(c.Request.Context(), repositories.SettingsInput{
		CompanyName:      req.CompanyName,
		OwnerName:        req.OwnerName,
		CompanyAddress:   req.CompanyAddress,
		CompanyPhone:     req.CompanyPhone,
		CompanyNIP:       req.CompanyNIP,
		SMTPUserEmail:    req.SMTPUserEmail,
		EmailReceiver:    req.EmailReceiver,
		H1Title:          req.H1Title,
		MottoDescription: req.MottoDescription,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate()
	c.JSON(http.StatusOK, settings)
}
