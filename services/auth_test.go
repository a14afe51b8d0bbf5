package services

import (
	"testing"
	"time"

	"community_justice_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.Session{})
	return db
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secreto123", hash)

	assert.True(t, CheckPassword("secreto123", hash))
	assert.False(t, CheckPassword("otraclave", hash))
}

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.Len(t, token1, SessionTokenLength*2) // hex encoded

	token2, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.NotEqual(t, token1, token2)
}

func TestCreateAndValidateSession(t *testing.T) {
	db := setupAuthTestDB()

	user := &models.User{Username: "anaperez", Email: "ana@example.com", Password: "x"}
	db.Create(user)

	session, err := CreateSession(db, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	validated, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.UserID)
	assert.Equal(t, "anaperez", validated.User.Username)
}

func TestValidateSessionExpired(t *testing.T) {
	db := setupAuthTestDB()

	user := &models.User{Username: "anaperez", Email: "ana@example.com", Password: "x"}
	db.Create(user)

	session, err := CreateSession(db, user.ID, "", "")
	assert.NoError(t, err)

	db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Hour))

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)

	// The expired session is removed
	var count int64
	db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDestroySession(t *testing.T) {
	db := setupAuthTestDB()

	user := &models.User{Username: "anaperez", Email: "ana@example.com", Password: "x"}
	db.Create(user)

	session, err := CreateSession(db, user.ID, "", "")
	assert.NoError(t, err)

	assert.NoError(t, DestroySession(db, session.Token))

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupAuthTestDB()

	user := &models.User{Username: "anaperez", Email: "ana@example.com", Password: "x"}
	db.Create(user)

	fresh, _ := CreateSession(db, user.ID, "", "")
	stale, _ := CreateSession(db, user.ID, "", "")
	db.Model(&models.Session{}).Where("id = ?", stale.ID).
		Update("expires_at", time.Now().Add(-time.Hour))

	assert.NoError(t, CleanupExpiredSessions(db))

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var remaining models.Session
	assert.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, fresh.ID, remaining.ID)
}
