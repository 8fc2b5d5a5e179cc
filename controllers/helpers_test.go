package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/SidW111/Prescripto/authentication"
	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/models"
	"github.com/SidW111/Prescripto/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points configuration.DB at a throwaway sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.DoctorSlot{},
		&models.Appointment{},
	))
	configuration.DB = db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return routes.SetupRoutes()
}

// doJSON performs a JSON request against the handler under test and returns
// the recorder plus the decoded envelope.
func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	envelope := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

// doForm performs a multipart form request.
func doForm(t *testing.T, router *gin.Engine, method, path string, fields map[string]string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	envelope := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

// createUser seeds a patient and returns the record with a valid token.
func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{Name: "Test Patient", Email: email, Password: string(hashed), Phone: "555-0100"}
	require.NoError(t, configuration.DB.Create(&user).Error)

	token, err := authentication.GeneratePatientToken(user.UserID)
	require.NoError(t, err)
	return user, token
}

// createDoctor seeds a doctor and returns the record with a valid dToken.
func createDoctor(t *testing.T, email string, fees float64, available bool) (models.Doctor, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	doctor := models.Doctor{
		Name:       "Dr Test",
		Email:      email,
		Password:   string(hashed),
		Speciality: "General physician",
		Degree:     "MBBS",
		Fees:       fees,
		Available:  available,
	}
	require.NoError(t, configuration.DB.Create(&doctor).Error)

	token, err := authentication.GenerateDoctorToken(doctor.Email, doctor.DoctorID)
	require.NoError(t, err)
	return doctor, token
}

func adminToken(t *testing.T) string {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "admin-password")
	token, err := authentication.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)
	return token
}
