package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"community_justice_go/config"
	"community_justice_go/db"
	"community_justice_go/middleware"
	"community_justice_go/models"
	"community_justice_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Session{},
		&models.Case{},
		&models.AuditLog{},
		&models.PlatformSettings{},
	)
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}

// createApprovedUser persists a user with an approved profile in the role
func createApprovedUser(t *testing.T, testDB *gorm.DB, username, role string) *models.User {
	hash, err := services.HashPassword("secreto123")
	assert.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)

	profile := &models.UserProfile{
		UserID:          user.ID,
		FullName:        "Carlos",
		LastName:        "Ramírez",
		IDNumber:        "99" + username,
		DateOfBirth:     time.Date(1980, 5, 10, 0, 0, 0, 0, time.UTC),
		RoleRequest:     role,
		ApprovedByAdmin: true,
		Role:            role,
	}
	assert.NoError(t, testDB.Create(profile).Error)
	user.Profile = profile
	return user
}

// actAs places the user in the request context the way RequireAuth and
// AuditActor would
func actAs(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyActor, services.ActorFromUser(user))
}

func createCaseForJudge(t *testing.T, judge *models.User) *models.Case {
	input := &services.CaseInput{
		ApplicantName:       "Ana Pérez",
		ApplicantID:         "1234567890",
		InvolvedName:        "Luis Gómez",
		ConflictDescription: "Disputa por linderos",
		Location:            "Bloque 2, casa 14",
		ConflictType:        models.ConflictTypeNeighborhood,
	}
	kase, err := services.RegisterCase(db.DB, input, judge)
	assert.NoError(t, err)
	return kase
}
