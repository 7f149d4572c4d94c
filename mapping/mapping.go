// Package mapping normalizes raw documents into the stable API shapes in
// models. Raw documents drift over time (schema-less store, two deployed
// apps reading the same collections), so every default and coercion is
// applied here and nowhere else; untrusted shapes must not leak past this
// package.
package mapping

import (
	"time"

	"rentatool-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// idHex renders a document id as a hex string regardless of whether it was
// stored as an ObjectID or a plain string.
func idHex(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}

func strField(doc bson.M, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func floatField(doc bson.M, key string) float64 {
	switch n := doc[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func intField(doc bson.M, key string) int {
	switch n := doc[key].(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// boolField tolerates string-boolean drift ("true"/"false") in addition to
// real booleans.
func boolField(doc bson.M, key string, def bool) bool {
	switch b := doc[key].(type) {
	case bool:
		return b
	case string:
		if b == "true" {
			return true
		}
		if b == "false" {
			return false
		}
	}
	return def
}

// timeField accepts the shapes timestamps have drifted through: BSON
// datetimes, Go times and ISO-8601 strings.
func timeField(doc bson.M, key string) (time.Time, bool) {
	switch t := doc[key].(type) {
	case primitive.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func timeFieldPtr(doc bson.M, key string) *time.Time {
	if t, ok := timeField(doc, key); ok {
		return &t
	}
	return nil
}

// Category maps a raw category document. parentId defaults to nil when
// absent or not a usable reference.
func Category(doc bson.M) models.Category {
	cat := models.Category{
		ID:   idHex(doc["_id"]),
		Name: strField(doc, "name"),
		Slug: strField(doc, "slug"),
	}
	switch p := doc["parentId"].(type) {
	case primitive.ObjectID:
		hex := p.Hex()
		cat.ParentID = &hex
	case string:
		if p != "" {
			parent := p
			cat.ParentID = &parent
		}
	}
	cat.CreatedAt, _ = timeField(doc, "createdAt")
	cat.UpdatedAt, _ = timeField(doc, "updatedAt")
	cat.DeletedAt = timeFieldPtr(doc, "deletedAt")
	return cat
}

// Image maps a raw image document. A missing createdAt is defaulted to now;
// normal writes always set it, this only covers drifted documents.
func Image(doc bson.M) models.Image {
	img := models.Image{
		ID:        idHex(doc["_id"]),
		ServiceID: idHex(doc["serviceId"]),
		URL:       strField(doc, "url"),
	}
	if t, ok := timeField(doc, "createdAt"); ok {
		img.CreatedAt = t
	} else {
		img.CreatedAt = time.Now()
	}
	return img
}

// Service maps a raw service document, already joined to its images and
// (optionally) its category. Every optional field gets a safe default so the
// external contract never exposes null: "" for strings, 0 for numerics,
// true for available.
func Service(doc bson.M) models.Service {
	svc := models.Service{
		ID:           idHex(doc["_id"]),
		Name:         strField(doc, "name"),
		Description:  strField(doc, "description"),
		RentalPrice:  floatField(doc, "rentalPrice"),
		Deposit:      floatField(doc, "deposit"),
		Quantity:     intField(doc, "quantity"),
		RentalPeriod: intField(doc, "rentalPeriod"),
		Condition:    strField(doc, "condition"),
		Available:    boolField(doc, "available", true),
		CategoryID:   idHex(doc["categoryId"]),
		Images:       []models.Image{},
		DeletedBy:    strField(doc, "deletedBy"),
	}
	svc.CreatedAt, _ = timeField(doc, "createdAt")
	svc.UpdatedAt, _ = timeField(doc, "updatedAt")
	svc.DeletedAt = timeFieldPtr(doc, "deletedAt")

	if raw, ok := doc["images"].(bson.A); ok {
		for _, entry := range raw {
			if imgDoc, ok := entry.(bson.M); ok {
				svc.Images = append(svc.Images, Image(imgDoc))
			}
		}
	}

	if catDoc, ok := doc["category"].(bson.M); ok {
		svc.Category = &models.CategoryRef{
			Name: strField(catDoc, "name"),
			Slug: strField(catDoc, "slug"),
		}
	}

	return svc
}

// Banner maps a raw banner document. Optional fields stay nil when the
// document lacks them; banner consumers distinguish absent from empty.
func Banner(doc bson.M) models.Banner {
	b := models.Banner{
		ID:       idHex(doc["_id"]),
		Title:    strField(doc, "title"),
		ImageURL: strField(doc, "imageUrl"),
	}
	for key, dst := range map[string]**string{
		"description": &b.Description,
		"ctaText":     &b.CtaText,
		"ctaLink":     &b.CtaLink,
	} {
		if s, ok := doc[key].(string); ok {
			val := s
			*dst = &val
		}
	}
	b.CreatedAt, _ = timeField(doc, "createdAt")
	b.UpdatedAt, _ = timeField(doc, "updatedAt")
	return b
}

// Settings maps the singleton settings document.
func Settings(doc bson.M) models.Settings {
	s := models.Settings{
		ID:               idHex(doc["_id"]),
		CompanyName:      strField(doc, "company_name"),
		OwnerName:        strField(doc, "owner_name"),
		CompanyAddress:   strField(doc, "company_address"),
		CompanyPhone:     strField(doc, "company_phone"),
		CompanyNIP:       strField(doc, "company_nip"),
		SMTPUserEmail:    strField(doc, "smtp_user_emailFrom"),
		EmailReceiver:    strField(doc, "email_receiver"),
		H1Title:          strField(doc, "h1_title"),
		MottoDescription: strField(doc, "motto_description"),
	}
	s.CreatedAt, _ = timeField(doc, "createdAt")
	s.UpdatedAt, _ = timeField(doc, "updatedAt")
	return s
}

// User maps a raw user document, password hash included; models.User never
// serializes it.
func User(doc bson.M) models.User {
	u := models.User{
		ID:       idHex(doc["_id"]),
		Email:    strField(doc, "email"),
		Password: strField(doc, "password"),
		Name:     strField(doc, "name"),
		Role:     strField(doc, "role"),
	}
	u.CreatedAt, _ = timeField(doc, "createdAt")
	u.UpdatedAt, _ = timeField(doc, "updatedAt")
	return u
}
