// Package repositories implements the catalog stores over MongoDB. Handlers
// depend on the interfaces below; tests substitute in-memory fakes.
package repositories

import (
	"context"
	"strings"

	"rentatool-backend/apperrors"
	"rentatool-backend/models"
)

// CategorySort selects the ordering of a category listing: name-ascending
// for stable public menus, newest-first for the admin list.
type CategorySort string

const (
	CategorySortByName CategorySort = "name"
	CategorySortNewest CategorySort = "newest"
)

type CategoryStore interface {
	List(ctx context.Context, sort CategorySort) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, name string, parentID *string) (*models.Category, error)
	Update(ctx context.Context, id, name string, parentID *string) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// ServiceInput carries the full editable field set of a service. Update has
// wholesale-replace semantics, so callers must always supply every field.
type ServiceInput struct {
	Name         string
	Description  string
	RentalPrice  float64
	Deposit      float64
	Quantity     int
	RentalPeriod int
	Condition    string
	Available    bool
	CategoryID   string
}

// Validate enforces the service invariants shared by every store
// implementation. Category existence is checked separately against the store.
func (in ServiceInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	if in.RentalPrice < 0 {
		return apperrors.ValidationField("rentalPrice", "rental price must not be negative")
	}
	if in.Deposit < 0 {
		return apperrors.ValidationField("deposit", "deposit must not be negative")
	}
	if in.Quantity < 0 {
		return apperrors.ValidationField("quantity", "quantity must not be negative")
	}
	if in.RentalPeriod < 1 {
		return apperrors.ValidationField("rentalPeriod", "rental period must be at least 1 day")
	}
	return nil
}

type ListServicesOptions struct {
	AvailableOnly bool
	CategoryID    string
}

type ServiceStore interface {
	List(ctx context.Context, opts ListServicesOptions) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// ListByCategorySlug resolves the category first; an unknown slug is a
	// valid empty result (nil category, no services), not an error.
	ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Service, error)
	Create(ctx context.Context, in ServiceInput, imageURLs []string) (*models.Service, error)
	Update(ctx context.Context, id string, in ServiceInput) (*models.Service, error)
	// Delete returns the deleted record for caller confirmation UI.
	Delete(ctx context.Context, id string) (*models.Service, error)
}

type BannerInput struct {
	Title       string
	Description *string
	CtaText     *string
	CtaLink     *string
	ImageURL    string
}

type BannerStore interface {
	List(ctx context.Context) ([]models.Banner, error)
	GetByID(ctx context.Context, id string) (*models.Banner, error)
	Create(ctx context.Context, in BannerInput) (*models.Banner, error)
	Update(ctx context.Context, id string, in BannerInput) (*models.Banner, error)
	Delete(ctx context.Context, id string) error
}

type SettingsInput struct {
	CompanyName      string
	OwnerName        string
	CompanyAddress   string
	CompanyPhone     string
	CompanyNIP       string
	SMTPUserEmail    string
	EmailReceiver    string
	H1Title          string
	MottoDescription string
}

type SettingsStore interface {
	// Get returns (nil, nil) when no settings record exists yet.
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, in SettingsInput) (*models.Settings, error)
}

type UserStore interface {
	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
