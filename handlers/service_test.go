package handlers

import (
	"net/http"
	"testing"

	"rentatool-backend/models"

	"github.com/gin-gonic/gin"
)

func setupServiceRouter(db *memDB, storage *mockStorage) *gin.Engine {
	handler := &ServiceHandler{
		Services: &fakeServiceStore{db: db, storage: storage},
		Storage:  storage,
	}

	r := gin.New()
	r.GET("/api/services", handler.GetServices)
	r.GET("/api/services/:id", handler.GetService)
	r.GET("/api/categories/slug/:slug/services", handler.GetServicesByCategorySlug)
	r.GET("/api/admin/services", handler.GetAllServices)
	r.POST("/api/admin/services", handler.CreateService)
	r.PUT("/api/admin/services/:id", handler.UpdateService)
	r.DELETE("/api/admin/services/:id", handler.DeleteService)
	return r
}

func TestGetServicesOnlyAvailable(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	db.seedService("Wiertarka", cat.ID, true)
	db.seedService("Młot (serwis)", cat.ID, false)
	router := setupServiceRouter(db, &mockStorage{})

	w := performGet(router, "/api/services")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var services []models.Service
	decodeBody(t, w, &services)

	if len(services) != 1 {
		t.Fatalf("expected 1 available service, got %d", len(services))
	}
	if services[0].Name != "Wiertarka" {
		t.Errorf("unexpected service: %s", services[0].Name)
	}
	if services[0].Category == nil || services[0].Category.Slug != "narzedzia" {
		t.Errorf("expected joined category ref, got %+v", services[0].Category)
	}
}

func TestGetAllServicesIncludesUnavailable(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	db.seedService("Wiertarka", cat.ID, true)
	db.seedService("Młot", cat.ID, false)
	router := setupServiceRouter(db, &mockStorage{})

	w := performGet(router, "/api/admin/services")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var services []models.Service
	decodeBody(t, w, &services)
	if len(services) != 2 {
		t.Errorf("expected 2 services for admin listing, got %d", len(services))
	}
}

func TestGetServiceByID(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	svc := db.seedService("Wiertarka", cat.ID, true, mockBucketPrefix+"services/photo.jpg")
	router := setupServiceRouter(db, &mockStorage{})

	w := performGet(router, "/api/services/"+svc.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.Service
	decodeBody(t, w, &got)
	if got.ID != svc.ID {
		t.Errorf("expected service %s, got %s", svc.ID, got.ID)
	}
	if len(got.Images) != 1 {
		t.Errorf("expected 1 image, got %d", len(got.Images))
	}
}

func TestGetServiceNotFound(t *testing.T) {
	router := setupServiceRouter(newMemDB(), &mockStorage{})

	w := performGet(router, "/api/services/missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetServicesByCategorySlug(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Łóżka Polowe", nil)
	other := db.seedCategory("Namioty", nil)
	db.seedService("Łóżko polowe XL", cat.ID, true)
	db.seedService("Łóżko serwisowane", cat.ID, false)
	db.seedService("Namiot", other.ID, true)
	router := setupServiceRouter(db, &mockStorage{})

	w := performGet(router, "/api/categories/slug/lozka-polowe/services")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Category *models.Category `json:"category"`
		Services []models.Service `json:"services"`
	}
	decodeBody(t, w, &resp)

	if resp.Category == nil || resp.Category.ID != cat.ID {
		t.Fatalf("expected resolved category, got %+v", resp.Category)
	}
	if len(resp.Services) != 1 {
		t.Fatalf("expected only the available service of the category, got %d", len(resp.Services))
	}
	if resp.Services[0].Name != "Łóżko polowe XL" {
		t.Errorf("unexpected service: %s", resp.Services[0].Name)
	}
}

func TestGetServicesByUnknownSlugIsEmptyResult(t *testing.T) {
	router := setupServiceRouter(newMemDB(), &mockStorage{})

	w := performGet(router, "/api/categories/slug/nie-ma-takiej/services")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown slug, got %d", w.Code)
	}

	var resp struct {
		Category *models.Category `json:"category"`
		Services []models.Service `json:"services"`
	}
	decodeBody(t, w, &resp)

	if resp.Category != nil {
		t.Errorf("expected null category, got %+v", resp.Category)
	}
	if resp.Services == nil || len(resp.Services) != 0 {
		t.Errorf("expected empty services list, got %v", resp.Services)
	}
}

func TestCreateServiceWithURLsAndFiles(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	storage := &mockStorage{}
	router := setupServiceRouter(db, storage)

	fields := serviceForm(cat.ID)
	fields["image_urls"] = []string{mockBucketPrefix + "services/existing.jpg"}

	w := performForm(t, router, "POST", "/api/admin/services",
		fields, map[string][]string{"images": {"upload.jpg"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Service
	decodeBody(t, w, &got)

	if got.Name != "Wiertarka udarowa" {
		t.Errorf("unexpected name: %s", got.Name)
	}
	if got.RentalPrice != 49.99 {
		t.Errorf("expected rentalPrice 49.99, got %v", got.RentalPrice)
	}
	if len(got.Images) != 2 {
		t.Fatalf("expected 2 images (url + upload), got %d", len(got.Images))
	}
	if len(storage.uploadedServiceImages) != 1 || storage.uploadedServiceImages[0] != "upload.jpg" {
		t.Errorf("expected upload.jpg to be uploaded, got %v", storage.uploadedServiceImages)
	}
}

func TestCreateServiceMissingCategory(t *testing.T) {
	db := newMemDB()
	router := setupServiceRouter(db, &mockStorage{})

	fields := serviceForm("")
	w := performForm(t, router, "POST", "/api/admin/services", fields, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing category, got %d", w.Code)
	}
}

func TestCreateServiceUnknownCategory(t *testing.T) {
	router := setupServiceRouter(newMemDB(), &mockStorage{})

	w := performForm(t, router, "POST", "/api/admin/services", serviceForm("not-there"), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateServiceMalformedNumbers(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	router := setupServiceRouter(db, &mockStorage{})

	cases := map[string]string{
		"rental_price":  "abc",
		"deposit":       "12,50",
		"quantity":      "2.5",
		"rental_period": "week",
	}

	for field, bad := range cases {
		fields := serviceForm(cat.ID)
		fields[field] = []string{bad}

		w := performForm(t, router, "POST", "/api/admin/services", fields, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s=%q: expected 400, got %d", field, bad, w.Code)
		}
	}
}

func TestCreateServiceMissingNumericField(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	router := setupServiceRouter(db, &mockStorage{})

	fields := serviceForm(cat.ID)
	delete(fields, "rental_price")

	w := performForm(t, router, "POST", "/api/admin/services", fields, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing rental_price, got %d", w.Code)
	}
}

func TestCreateServiceNegativePrice(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	router := setupServiceRouter(db, &mockStorage{})

	fields := serviceForm(cat.ID)
	fields["rental_price"] = []string{"-5"}

	w := performForm(t, router, "POST", "/api/admin/services", fields, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative price, got %d", w.Code)
	}
}

func TestCreateServiceAvailableDefaultsTrue(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	router := setupServiceRouter(db, &mockStorage{})

	fields := serviceForm(cat.ID)
	delete(fields, "available")

	w := performForm(t, router, "POST", "/api/admin/services", fields, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Service
	decodeBody(t, w, &got)
	if !got.Available {
		t.Error("expected omitted available to default to true")
	}
}

func TestUpdateServiceBlankCategoryKeepsExisting(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	svc := db.seedService("Wiertarka", cat.ID, true)
	router := setupServiceRouter(db, &mockStorage{})

	fields := serviceForm("")
	fields["name"] = []string{"Wiertarka PRO"}
	fields["available"] = []string{"false"}

	w := performForm(t, router, "PUT", "/api/admin/services/"+svc.ID, fields, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Service
	decodeBody(t, w, &got)
	if got.Name != "Wiertarka PRO" {
		t.Errorf("expected updated name, got %s", got.Name)
	}
	if got.Available {
		t.Error("expected available=false after update")
	}
	if got.CategoryID != cat.ID {
		t.Errorf("expected category to be kept, got %s", got.CategoryID)
	}
}

func TestUpdateServiceNotFound(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	router := setupServiceRouter(db, &mockStorage{})

	w := performForm(t, router, "PUT", "/api/admin/services/missing", serviceForm(cat.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeleteServicePurgesOwnedImages(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Narzędzia", nil)
	svc := db.seedService("Wiertarka", cat.ID, true,
		mockBucketPrefix+"services/a.jpg",
		"https://external.example.com/b.jpg",
	)
	storage := &mockStorage{}
	router := setupServiceRouter(db, storage)

	w := performJSON(router, "DELETE", "/api/admin/services/"+svc.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string         `json:"message"`
		Service models.Service `json:"service"`
	}
	decodeBody(t, w, &resp)

	if resp.Service.ID != svc.ID {
		t.Errorf("expected deleted service in response, got %s", resp.Service.ID)
	}

	// Only the image inside our bucket is purged; foreign URLs are skipped.
	if len(storage.deletedPaths) != 1 || storage.deletedPaths[0] != "services/a.jpg" {
		t.Errorf("expected exactly services/a.jpg purged, got %v", storage.deletedPaths)
	}

	if w := performGet(router, "/api/services/"+svc.ID); w.Code != http.StatusNotFound {
		t.Errorf("expected deleted service to be gone, got %d", w.Code)
	}
}

func TestDeleteServiceNotFound(t *testing.T) {
	router := setupServiceRouter(newMemDB(), &mockStorage{})

	w := performJSON(router, "DELETE", "/api/admin/services/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
