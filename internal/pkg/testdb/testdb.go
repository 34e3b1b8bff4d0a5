// Package testdb provides isolated in-memory databases for service and
// handler tests.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh in-memory database migrated with the full schema.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.BackgroundImage{},
		&model.Route{},
		&model.RoutePoint{},
		&model.GameBoard{},
		&model.Path{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// SeedUser creates a user with the given username and password "testpass",
// plus an auth token. Returns the user and the raw token key.
func SeedUser(t *testing.T, db *gorm.DB, username string) (model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("testpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}

	user := model.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	token := model.AuthToken{Key: uuid.New().String(), UserId: user.Id}
	if err := db.Create(&token).Error; err != nil {
		t.Fatalf("creating test token: %v", err)
	}
	return user, token.Key
}

// SeedBackground creates a background image row for route tests.
func SeedBackground(t *testing.T, db *gorm.DB, name string) model.BackgroundImage {
	t.Helper()

	background := model.BackgroundImage{Name: name, Image: "backgrounds/" + name + ".png"}
	if err := db.Create(&background).Error; err != nil {
		t.Fatalf("creating test background: %v", err)
	}
	return background
}
