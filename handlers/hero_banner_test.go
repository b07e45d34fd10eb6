package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"iconstore-backend/models"
)

func TestCreateHeroBanner(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	body := map[string]interface{}{
		"title":    "Summer Sale",
		"subtitle": "Up to 50% off",
		"imageUrl": testPublicBase + "/hero/2026/08/01/abc-banner.webp",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/hero-banners", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["status"] != models.StatusActive {
		t.Errorf("expected default status ACTIVE, got %v", resp["status"])
	}
	if resp["title"] != "Summer Sale" {
		t.Errorf("unexpected title: %v", resp["title"])
	}
}

func TestCreateHeroBannerRejectsInsecureImageURL(t *testing.T) {
	db := freshDB()
	router := setupHeroRouter(db, newMockStorage())
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	body := map[string]interface{}{
		"title":    "Bad",
		"imageUrl": "http://insecure.example.com/x.png",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/hero-banners", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	errObj, _ := resp["error"].(map[string]interface{})
	if errObj["code"] != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", errObj["code"])
	}
}

func TestHeroBannerRequiresAdmin(t *testing.T) {
	db := freshDB()
	router := setupHeroRouter(db, newMockStorage())
	_, userToken := seedTestUser(db, "user@test.com", models.RoleUser)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/admin/hero-banners", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/hero-banners", nil, userToken))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", w.Code)
	}
}

func TestGetHeroBannersPaginationClamp(t *testing.T) {
	db := freshDB()
	router := setupHeroRouter(db, newMockStorage())
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)
	for i := 0; i < 3; i++ {
		seedHeroBanner(db, "Banner", testPublicBase+"/hero/a.png")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/hero-banners?limit=500", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp["limit"].(float64) != 100 {
		t.Errorf("expected limit clamped to 100, got %v", resp["limit"])
	}
	if resp["total"].(float64) != 3 {
		t.Errorf("expected total 3, got %v", resp["total"])
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/hero-banners", nil, token))
	if resp := parseResponse(w); resp["limit"].(float64) != 20 {
		t.Errorf("expected default limit 20, got %v", resp["limit"])
	}
}

func TestGetHeroBannerNotFound(t *testing.T) {
	db := freshDB()
	router := setupHeroRouter(db, newMockStorage())
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/hero-banners/00000000-0000-0000-0000-000000000000", nil, token))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateHeroBannerImageChangeReclaimsOldObject(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	oldKey := "hero/2026/08/01/old-banner.webp"
	banner := seedHeroBanner(db, "Old", testPublicBase+"/"+oldKey)

	body := map[string]interface{}{"imageUrl": testPublicBase + "/hero/2026/08/02/new-banner.webp"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/admin/hero-banners/"+banner.ID.String(), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.DeleteCalls) != 1 {
		t.Fatalf("expected exactly 1 delete call, got %d", len(store.DeleteCalls))
	}
	if store.DeleteCalls[0] != oldKey {
		t.Errorf("expected delete of %s, got %s", oldKey, store.DeleteCalls[0])
	}
}

func TestUpdateHeroBannerWithoutImageChangeKeepsObject(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	banner := seedHeroBanner(db, "Old", testPublicBase+"/hero/2026/08/01/keep.webp")

	body := map[string]interface{}{"title": "Renamed"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/admin/hero-banners/"+banner.ID.String(), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(store.DeleteCalls) != 0 {
		t.Errorf("expected no delete calls, got %d", len(store.DeleteCalls))
	}
	if resp := parseResponse(w); resp["title"] != "Renamed" {
		t.Errorf("expected updated title, got %v", resp["title"])
	}
}

func TestUpdateHeroBannerSkipsDeleteWhenKeyStillReferenced(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	sharedURL := testPublicBase + "/hero/2026/08/01/shared.webp"
	banner := seedHeroBanner(db, "A", sharedURL)
	seedOffer(db, models.TableLaptopOffers, "Laptop", sharedURL, 100000, 90000, 10)

	body := map[string]interface{}{"imageUrl": testPublicBase + "/hero/2026/08/02/solo.webp"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/admin/hero-banners/"+banner.ID.String(), body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(store.DeleteCalls) != 0 {
		t.Errorf("expected no delete while key is referenced elsewhere, got %d calls", len(store.DeleteCalls))
	}
}

func TestDeleteHeroBanner(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	key := "hero/2026/08/01/gone.webp"
	banner := seedHeroBanner(db, "Doomed", testPublicBase+"/"+key)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/hero-banners/"+banner.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["ok"] != true || resp["s3Deleted"] != true {
		t.Errorf("expected ok and s3Deleted true, got %v", resp)
	}
	if resp["s3DeleteError"] != nil {
		t.Errorf("expected nil s3DeleteError, got %v", resp["s3DeleteError"])
	}
	if len(store.DeleteCalls) != 1 || store.DeleteCalls[0] != key {
		t.Errorf("expected single delete of %s, got %v", key, store.DeleteCalls)
	}

	var count int64
	db.Model(&models.HeroBanner{}).Where("id = ?", banner.ID).Count(&count)
	if count != 0 {
		t.Error("expected row to be deleted")
	}
}

func TestDeleteHeroBannerForeignImageURL(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	banner := seedHeroBanner(db, "External", "https://cdn.other.example.com/some/image.png")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/hero-banners/"+banner.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp["ok"] != true {
		t.Error("expected ok true even when key is unparsable")
	}
	if resp["s3Deleted"] != false || resp["s3DeleteError"] != "unparsable_or_missing_key" {
		t.Errorf("expected s3Deleted false with unparsable_or_missing_key, got %v", resp)
	}
	if len(store.DeleteCalls) != 0 {
		t.Errorf("expected no delete attempts, got %d", len(store.DeleteCalls))
	}
}

func TestDeleteHeroBannerStorageFailureStillDeletesRow(t *testing.T) {
	db := freshDB()
	store := newMockStorage()
	store.DeleteFn = func(key string) error { return errors.New("backend unavailable") }
	router := setupHeroRouter(db, store)
	_, token := seedTestUser(db, "admin@test.com", models.RoleAdmin)

	banner := seedHeroBanner(db, "Stubborn", testPublicBase+"/hero/2026/08/01/stuck.webp")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/hero-banners/"+banner.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp["ok"] != true || resp["s3Deleted"] != false {
		t.Errorf("expected ok true with s3Deleted false, got %v", resp)
	}
	if resp["s3DeleteError"] != "backend unavailable" {
		t.Errorf("expected last storage error surfaced, got %v", resp["s3DeleteError"])
	}
	if len(store.DeleteCalls) != 3 {
		t.Errorf("expected 3 delete attempts, got %d", len(store.DeleteCalls))
	}

	var count int64
	db.Model(&models.HeroBanner{}).Where("id = ?", banner.ID).Count(&count)
	if count != 0 {
		t.Error("expected row deleted despite storage failure")
	}
}
