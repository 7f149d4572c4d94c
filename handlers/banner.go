package handlers

import (
	"net/http"

	"rentatool-backend/apperrors"
	"rentatool-backend/firebase"
	"rentatool-backend/repositories"
	"rentatool-backend/utils"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	Banners repositories.BannerStore
	Storage firebase.StorageClient
}

func (h *BannerHandler) GetBanners(c *gin.Context) {
	banners, err := h.Banners.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) GetBanner(c *gin.Context) {
	banner, err := h.Banners.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) CreateBanner(c *gin.Context) {
	input := parseBannerForm(c)

	imageURL, err := h.resolveBannerImage(c, "")
	if err != nil {
		respondError(c, err)
		return
	}
	input.ImageURL = imageURL

	banner, err := h.Banners.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	existing, err := h.Banners.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	input := parseBannerForm(c)

	// Without a new image the banner keeps its current one.
	imageURL, err := h.resolveBannerImage(c, existing.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	input.ImageURL = imageURL

	banner, err := h.Banners.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	if err := h.Banners.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}

// parseBannerForm reads the multipart fields, keeping the absent-vs-empty
// distinction for the optional ones.
func parseBannerForm(c *gin.Context) repositories.BannerInput {
	input := repositories.BannerInput{
		Title: c.PostForm("title"),
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("cta_text"); ok {
		input.CtaText = &v
	}
	if v, ok := c.GetPostForm("cta_link"); ok {
		input.CtaLink = &v
	}
	return input
}

// resolveBannerImage returns, in order of preference: a freshly uploaded
// file, a pre-uploaded image_url form value, or the fallback.
func (h *BannerHandler) resolveBannerImage(c *gin.Context, fallback string) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if u := c.PostForm("image_url"); u != "" {
			return u, nil
		}
		return fallback, nil
	}

	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		return "", apperrors.ValidationField("image", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.Internal("failed to open uploaded file", err)
	}
	defer file.Close()

	url, err := h.Storage.UploadBannerImage(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return "", apperrors.Internal("image upload failed", err)
	}
	return url, nil
}
