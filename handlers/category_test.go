package handlers

import (
	"net/http"
	"testing"

	"rentatool-backend/models"

	"github.com/gin-gonic/gin"
)

func setupCategoryRouter(db *memDB) *gin.Engine {
	handler := &CategoryHandler{Categories: &fakeCategoryStore{db: db}}

	r := gin.New()
	r.GET("/api/categories", handler.GetCategories)
	r.GET("/api/categories/tree", handler.GetCategoryTree)
	r.GET("/api/categories/:id", handler.GetCategory)
	r.POST("/api/admin/categories", handler.CreateCategory)
	r.PUT("/api/admin/categories/:id", handler.UpdateCategory)
	r.DELETE("/api/admin/categories/:id", handler.DeleteCategory)
	return r
}

func TestGetCategoriesSortedByName(t *testing.T) {
	db := newMemDB()
	db.seedCategory("Wiertarki", nil)
	db.seedCategory("agregaty", nil)
	db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performGet(router, "/api/categories")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var categories []models.Category
	decodeBody(t, w, &categories)

	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	want := []string{"agregaty", "Namioty", "Wiertarki"}
	for i := range want {
		if categories[i].Name != want[i] {
			t.Fatalf("expected order %v, got %s at %d", want, categories[i].Name, i)
		}
	}
}

func TestGetCategoriesNewestFirst(t *testing.T) {
	db := newMemDB()
	first := db.seedCategory("Pierwsza", nil)
	second := db.seedCategory("Druga", nil)
	router := setupCategoryRouter(db)

	w := performGet(router, "/api/categories?sort=newest")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var categories []models.Category
	decodeBody(t, w, &categories)

	if categories[0].ID != second.ID || categories[1].ID != first.ID {
		t.Errorf("expected newest first, got %s then %s", categories[0].Name, categories[1].Name)
	}
}

func TestGetCategoryTreeNesting(t *testing.T) {
	db := newMemDB()
	root := db.seedCategory("Narzędzia", nil)
	db.seedCategory("Wiertarki", &root.ID)
	db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performGet(router, "/api/categories/tree")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var tree []struct {
		models.Category
		Children []models.Category `json:"children"`
	}
	decodeBody(t, w, &tree)

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	var found bool
	for _, node := range tree {
		if node.ID == root.ID {
			found = true
			if len(node.Children) != 1 || node.Children[0].Name != "Wiertarki" {
				t.Errorf("expected Wiertarki nested under Narzędzia, got %+v", node.Children)
			}
		}
	}
	if !found {
		t.Error("expected Narzędzia among roots")
	}
}

func TestGetCategoryByID(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performGet(router, "/api/categories/"+cat.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.Category
	decodeBody(t, w, &got)
	if got.ID != cat.ID || got.Slug != "namioty" {
		t.Errorf("unexpected category: %+v", got)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	router := setupCategoryRouter(newMemDB())

	w := performGet(router, "/api/categories/missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCreateCategoryGeneratesPolishSlug(t *testing.T) {
	db := newMemDB()
	router := setupCategoryRouter(db)

	w := performJSON(router, "POST", "/api/admin/categories", gin.H{"name": "Łóżka Polowe"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Category
	decodeBody(t, w, &got)
	if got.Slug != "lozka-polowe" {
		t.Errorf("expected slug lozka-polowe, got %s", got.Slug)
	}
	if got.ParentID != nil {
		t.Errorf("expected root category, got parent %v", *got.ParentID)
	}
}

func TestCreateCategoryWithParent(t *testing.T) {
	db := newMemDB()
	parent := db.seedCategory("Narzędzia", nil)
	router := setupCategoryRouter(db)

	w := performJSON(router, "POST", "/api/admin/categories", gin.H{
		"name":     "Wiertarki",
		"parentId": parent.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Category
	decodeBody(t, w, &got)
	if got.ParentID == nil || *got.ParentID != parent.ID {
		t.Errorf("expected parent %s, got %v", parent.ID, got.ParentID)
	}
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	router := setupCategoryRouter(newMemDB())

	w := performJSON(router, "POST", "/api/admin/categories", gin.H{
		"name":     "Wiertarki",
		"parentId": "does-not-exist",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown parent, got %d", w.Code)
	}
}

func TestCreateCategoryDuplicateNameCaseInsensitive(t *testing.T) {
	db := newMemDB()
	db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performJSON(router, "POST", "/api/admin/categories", gin.H{"name": "NAMIOTY"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate name, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	db := newMemDB()
	db.seedCategory("Łóżka", nil)
	router := setupCategoryRouter(db)

	// Different name, same slug after diacritic folding.
	w := performJSON(router, "POST", "/api/admin/categories", gin.H{"name": "Lozka"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for slug collision, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateCategoryMissingName(t *testing.T) {
	router := setupCategoryRouter(newMemDB())

	w := performJSON(router, "POST", "/api/admin/categories", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestUpdateCategoryRenameRegeneratesSlug(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performJSON(router, "PUT", "/api/admin/categories/"+cat.ID, gin.H{"name": "Śpiwory"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Category
	decodeBody(t, w, &got)
	if got.Name != "Śpiwory" || got.Slug != "spiwory" {
		t.Errorf("expected renamed category with regenerated slug, got %+v", got)
	}
}

func TestUpdateCategoryKeepingOwnNameIsNotAConflict(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	db.seedCategory("Wiertarki", nil)
	router := setupCategoryRouter(db)

	// The name lookup resolves the record itself, which must not collide.
	w := performJSON(router, "PUT", "/api/admin/categories/"+cat.ID, gin.H{"name": "namioty"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when keeping own name, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Category
	decodeBody(t, w, &got)
	if got.Name != "namioty" || got.Slug != "namioty" {
		t.Errorf("unexpected category after rename: %+v", got)
	}
}

func TestUpdateCategoryToAnotherCategorysName(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	db.seedCategory("Wiertarki", nil)
	router := setupCategoryRouter(db)

	w := performJSON(router, "PUT", "/api/admin/categories/"+cat.ID, gin.H{"name": "WIERTARKI"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 when taking another category's name, got %d", w.Code)
	}
}

func TestUpdateCategorySelfParentRejected(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performJSON(router, "PUT", "/api/admin/categories/"+cat.ID, gin.H{
		"name":     "Namioty",
		"parentId": cat.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self-parent, got %d", w.Code)
	}
}

func TestUpdateCategoryCycleRejected(t *testing.T) {
	db := newMemDB()
	root := db.seedCategory("A", nil)
	child := db.seedCategory("B", &root.ID)
	grandchild := db.seedCategory("C", &child.ID)
	router := setupCategoryRouter(db)

	// Moving A under its own grandchild would create a cycle.
	w := performJSON(router, "PUT", "/api/admin/categories/"+root.ID, gin.H{
		"name":     "A",
		"parentId": grandchild.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for ancestor cycle, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	router := setupCategoryRouter(newMemDB())

	w := performJSON(router, "PUT", "/api/admin/categories/missing", gin.H{"name": "X"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeleteCategoryBlockedByServices(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	db.seedService("Namiot 4-osobowy", cat.ID, true)
	router := setupCategoryRouter(db)

	w := performJSON(router, "DELETE", "/api/admin/categories/"+cat.ID, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 when services reference the category, got %d", w.Code)
	}
	if db.categoryByID(cat.ID) == nil {
		t.Error("expected category to survive a blocked delete")
	}
}

func TestDeleteCategoryBlockedByChildren(t *testing.T) {
	db := newMemDB()
	root := db.seedCategory("Narzędzia", nil)
	db.seedCategory("Wiertarki", &root.ID)
	router := setupCategoryRouter(db)

	w := performJSON(router, "DELETE", "/api/admin/categories/"+root.ID, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 when children exist, got %d", w.Code)
	}
}

func TestDeleteCategorySuccess(t *testing.T) {
	db := newMemDB()
	cat := db.seedCategory("Namioty", nil)
	router := setupCategoryRouter(db)

	w := performJSON(router, "DELETE", "/api/admin/categories/"+cat.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["message"] != "Category deleted successfully" {
		t.Errorf("unexpected message: %s", resp["message"])
	}
	if db.categoryByID(cat.ID) != nil {
		t.Error("expected category to be removed")
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	router := setupCategoryRouter(newMemDB())

	w := performJSON(router, "DELETE", "/api/admin/categories/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
