package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/models"
)

func TestRegisterCreatesProfileForRole(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":       "Student",
		"email":      "student@example.com",
		"password":   "password123",
		"role":       "student",
		"university": "Union University",
		"skills":     []string{"go", "design"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var profile models.StudentProfile
	if err := db.DB.First(&profile).Error; err != nil {
		t.Fatalf("student profile not created: %v", err)
	}
	if profile.University != "Union University" {
		t.Errorf("university = %q", profile.University)
	}
	if len(profile.Skills) != 2 {
		t.Errorf("skills = %v", profile.Skills)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	r := setupServer(t)
	register(t, r, "Org", "org@example.com", "organization")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Other",
		"email":    "org@example.com",
		"password": "password123",
		"role":     "student",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate email: expected 400, got %d", w.Code)
	}
}

func TestLoginAndMe(t *testing.T) {
	r := setupServer(t)
	register(t, r, "Org", "org@example.com", "organization")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "org@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login response carries no token")
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	user, _ := decodeBody(t, w)["user"].(map[string]interface{})
	if user["role"] != "organization" {
		t.Errorf("me role = %v, want organization", user["role"])
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "org@example.com",
		"password": "wrongpassword",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong password: expected 400, got %d", w.Code)
	}
}

func TestInvalidTokenClearsSession(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-token", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// The blanket policy: an auth failure invalidates the session cookie.
	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("401 response must clear the token cookie")
	}
}

func TestAdminFlagSurfacesInMe(t *testing.T) {
	r := setupServer(t)
	token, id := register(t, r, "Admin", "admin@example.com", "company")
	grantAdmin(t, id)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	user, _ := decodeBody(t, w)["user"].(map[string]interface{})

	if user["is_admin"] != true {
		t.Errorf("is_admin = %v, want true", user["is_admin"])
	}
}
