package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"rentatool-backend/apperrors"
	"rentatool-backend/firebase"
	"rentatool-backend/repositories"
	"rentatool-backend/utils"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	Services repositories.ServiceStore
	Storage  firebase.StorageClient
}

// GetServices is the public catalog listing; it always filters to available
// services.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	services, err := h.Services.List(c.Request.Context(), repositories.ListServicesOptions{
		AvailableOnly: true,
		CategoryID:    c.Query("category_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetAllServices is the admin listing: every service, available or not.
func (h *ServiceHandler) GetAllServices(c *gin.Context) {
	services, err := h.Services.List(c.Request.Context(), repositories.ListServicesOptions{
		CategoryID: c.Query("category_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	service, err := h.Services.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// GetServicesByCategorySlug resolves the category by slug and returns its
// available services. An unknown slug responds 200 with a null category and
// an empty list; the storefront renders that as an empty browse page.
func (h *ServiceHandler) GetServicesByCategorySlug(c *gin.Context) {
	category, services, err := h.Services.ListByCategorySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"services": services,
	})
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	input, err := parseServiceForm(c, true)
	if err != nil {
		respondError(c, err)
		return
	}

	imageURLs, err := h.collectImageURLs(c)
	if err != nil {
		respondError(c, err)
		return
	}

	service, err := h.Services.Create(c.Request.Context(), input, imageURLs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService has full-field replace semantics: the form layer supplies
// the complete editable field set on every save.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	input, err := parseServiceForm(c, false)
	if err != nil {
		respondError(c, err)
		return
	}

	service, err := h.Services.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService returns the deleted record so the admin UI can confirm what
// was removed.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	service, err := h.Services.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service deleted successfully",
		"service": service,
	})
}

// collectImageURLs gathers pre-uploaded URLs from the form and uploads any
// attached files, returning the combined URL list.
func (h *ServiceHandler) collectImageURLs(c *gin.Context) ([]string, error) {
	urls := []string{}
	for _, u := range c.PostFormArray("image_urls") {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, strings.TrimSpace(u))
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return urls, nil
	}

	for _, fh := range form.File["images"] {
		if err := utils.ValidateFileUpload(fh); err != nil {
			return nil, apperrors.ValidationField("images", err.Error())
		}

		file, err := fh.Open()
		if err != nil {
			return nil, apperrors.Internal("failed to open uploaded file", err)
		}

		url, err := h.Storage.UploadServiceImage(file, fh.Filename, fh.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			return nil, apperrors.Internal("image upload failed", err)
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// parseServiceForm parses the multipart form into a ServiceInput. Malformed
// numeric fields are rejected, never silently defaulted.
func parseServiceForm(c *gin.Context, requireCategory bool) (repositories.ServiceInput, error) {
	var in repositories.ServiceInput

	in.Name = strings.TrimSpace(c.PostForm("name"))
	in.Description = c.PostForm("description")
	in.Condition = c.PostForm("condition")
	in.CategoryID = strings.TrimSpace(c.PostForm("category_id"))

	var err error
	if in.RentalPrice, err = parseDecimalField(c.PostForm("rental_price"), "rental_price"); err != nil {
		return in, err
	}
	if in.Deposit, err = parseDecimalField(c.PostForm("deposit"), "deposit"); err != nil {
		return in, err
	}
	if in.Quantity, err = parseIntField(c.PostForm("quantity"), "quantity"); err != nil {
		return in, err
	}
	if in.RentalPeriod, err = parseIntField(c.PostForm("rental_period"), "rental_period"); err != nil {
		return in, err
	}

	in.Available = parseAvailable(c.PostForm("available"))

	if requireCategory && in.CategoryID == "" {
		return in, apperrors.ValidationField("category_id", "category is required")
	}

	return in, nil
}

func parseDecimalField(raw, field string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, apperrors.ValidationField(field, field+" is required")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, apperrors.ValidationField(field, field+" must be a number")
	}
	return value, nil
}

func parseIntField(raw, field string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, apperrors.ValidationField(field, field+" is required")
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.ValidationField(field, field+" must be an integer")
	}
	return value, nil
}

// parseAvailable normalizes boolean and string-boolean form input. An
// omitted field means available; only an explicit negative turns it off.
func parseAvailable(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no":
		return false
	default:
		return true
	}
}
