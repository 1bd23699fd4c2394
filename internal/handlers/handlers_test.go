package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/auth"
	"github.com/union-match/union-match/internal/models"
	"github.com/union-match/union-match/internal/router"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the full router against a fresh in-memory database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("failed to init JWT secret: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	db.DB = gdb

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// register creates an account and returns its token and user id.
func register(t *testing.T, r *gin.Engine, name, email, role string) (string, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]interface{})
	id, _ := user["id"].(float64)

	if token == "" || id == 0 {
		t.Fatalf("register %s: malformed response: %s", email, w.Body.String())
	}

	return token, uint(id)
}

// grantAdmin provisions the canonical admin role on an existing account.
func grantAdmin(t *testing.T, userID uint) {
	t.Helper()

	err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("app_metadata", datatypes.JSON(`{"roles":["admin"]}`)).Error

	if err != nil {
		t.Fatalf("failed to grant admin: %v", err)
	}
}

func createProject(t *testing.T, r *gin.Engine, companyToken string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/projects", companyToken, gin.H{
		"title":        "Campus hackathon sponsorship",
		"description":  "Looking for a student organization to co-host a hackathon.",
		"contact_info": "projects@example.com",
		"budget":       "500,000 JPY",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	id, _ := body["id"].(float64)
	return uint(id)
}

func setProjectStatus(t *testing.T, r *gin.Engine, adminToken string, projectID uint, status string) *httptest.ResponseRecorder {
	t.Helper()

	return doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/projects/%d/status", projectID), adminToken, gin.H{
		"status": status,
	})
}

func approveProject(t *testing.T, r *gin.Engine, adminToken string, projectID uint) {
	t.Helper()

	w := setProjectStatus(t, r, adminToken, projectID, "public")
	if w.Code != http.StatusOK {
		t.Fatalf("approve project: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func submitApplication(t *testing.T, r *gin.Engine, applicantToken string, projectID uint) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/applications", applicantToken, gin.H{
		"project_id":   projectID,
		"appeal":       "We run three hackathons a year and can bring 200 students.",
		"contact_info": "org@example.com",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("submit application: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	id, _ := body["id"].(float64)
	return uint(id)
}

func decideApplication(t *testing.T, r *gin.Engine, companyToken string, applicationID uint, status string) *httptest.ResponseRecorder {
	t.Helper()

	return doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/applications/%d/status", applicationID), companyToken, gin.H{
		"status": status,
	})
}

func submitRating(t *testing.T, r *gin.Engine, token string, applicationID uint, score int, comment string) *httptest.ResponseRecorder {
	t.Helper()

	return doJSON(t, r, http.MethodPost, "/api/ratings", token, gin.H{
		"application_id": applicationID,
		"score":          score,
		"comment":        comment,
	})
}
