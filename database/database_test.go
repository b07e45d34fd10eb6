package database

import (
	"os"
	"testing"

	"iconstore-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	ddl := `CREATE TABLE IF NOT EXISTS "users" (
		"id" TEXT PRIMARY KEY,
		"email" TEXT NOT NULL UNIQUE,
		"name" TEXT,
		"password_hash" TEXT,
		"role" TEXT DEFAULT 'USER',
		"created_at" DATETIME,
		"updated_at" DATETIME
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatal(err)
	}
	return db
}

func TestCreateDefaultAdminNew(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "root@test.com")
	os.Setenv("ADMIN_PASSWORD", "supersecret")
	defer func() {
		os.Unsetenv("ADMIN_EMAIL")
		os.Unsetenv("ADMIN_PASSWORD")
	}()

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var admin models.User
	if err := db.Where("email = ?", "root@test.com").First(&admin).Error; err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("supersecret")); err != nil {
		t.Error("stored hash does not match configured password")
	}
}

func TestCreateDefaultAdminAlreadyExists(t *testing.T) {
	db := setupTestDB(t)
	os.Setenv("ADMIN_EMAIL", "root@test.com")
	defer os.Unsetenv("ADMIN_EMAIL")

	existing := models.User{Email: "root@test.com", Role: models.RoleUser}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}

	if err := CreateDefaultAdmin(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "root@test.com").Count(&count)
	if count != 1 {
		t.Errorf("expected the existing user untouched, got %d rows", count)
	}

	var user models.User
	db.Where("email = ?", "root@test.com").First(&user)
	if user.Role != models.RoleUser {
		t.Error("existing user's role must not be escalated")
	}
}
