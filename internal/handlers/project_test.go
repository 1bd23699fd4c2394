package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/models"
)

func TestCreateProjectStartsInReview(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")

	projectID := createProject(t, r, companyToken)

	var project models.Project
	if err := db.DB.First(&project, projectID).Error; err != nil {
		t.Fatalf("failed to load project: %v", err)
	}

	if project.Status != models.ProjectStatusReview {
		t.Errorf("new project status = %s, want review", project.Status)
	}

	// Projects under review do not appear in the public listing.
	w := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list projects: expected 200, got %d", w.Code)
	}
	var listing []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if len(listing) != 0 {
		t.Errorf("expected empty public listing, got %d entries", len(listing))
	}
}

func TestCreateProjectRequiresFields(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")

	w := doJSON(t, r, http.MethodPost, "/api/projects", companyToken, map[string]interface{}{
		"title": "Missing everything else",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", w.Code)
	}
}

func TestPublicListingRedactsContactInfo(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")
	adminToken, adminID := register(t, r, "Admin", "admin@example.com", "company")
	grantAdmin(t, adminID)

	projectID := createProject(t, r, companyToken)
	approveProject(t, r, adminToken, projectID)

	w := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	var listing []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if len(listing) != 1 {
		t.Fatalf("expected 1 public project, got %d", len(listing))
	}
	if _, present := listing[0]["contact_info"]; present {
		t.Error("public listing must not expose contact_info")
	}

	// Anonymous detail view is redacted too.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), "", nil)
	body := decodeBody(t, w)
	if _, present := body["contact_info"]; present {
		t.Error("anonymous detail view must not expose contact_info")
	}

	// The owner sees the private fields.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), companyToken, nil)
	body = decodeBody(t, w)
	if body["contact_info"] != "projects@example.com" {
		t.Errorf("owner view contact_info = %v", body["contact_info"])
	}
}

func TestNonPublicProjectHiddenFromStrangers(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")
	otherToken, _ := register(t, r, "Org", "org@example.com", "organization")

	projectID := createProject(t, r, companyToken)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-public project, got %d", w.Code)
	}
}

func TestReviewDecisionMessages(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")
	adminToken, adminID := register(t, r, "Admin", "admin@example.com", "company")
	grantAdmin(t, adminID)

	projectID := createProject(t, r, companyToken)

	w := setProjectStatus(t, r, adminToken, projectID, "public")
	if body := decodeBody(t, w); body["message"] != "Project approved" {
		t.Errorf("approve message = %v", body["message"])
	}

	w = setProjectStatus(t, r, adminToken, projectID, "review")
	if body := decodeBody(t, w); body["message"] != "Project returned to review" {
		t.Errorf("revert message = %v", body["message"])
	}

	w = setProjectStatus(t, r, adminToken, projectID, "rejected")
	if body := decodeBody(t, w); body["message"] != "Project rejected" {
		t.Errorf("reject message = %v", body["message"])
	}
}

func TestReviewDecisionRejectsUnknownStatus(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")
	adminToken, adminID := register(t, r, "Admin", "admin@example.com", "company")
	grantAdmin(t, adminID)

	projectID := createProject(t, r, companyToken)

	w := setProjectStatus(t, r, adminToken, projectID, "archived")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", w.Code)
	}

	var project models.Project
	db.DB.First(&project, projectID)
	if project.Status != models.ProjectStatusReview {
		t.Errorf("project status changed to %s after invalid decision", project.Status)
	}
}

func TestNonAdminCannotReview(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")
	orgToken, _ := register(t, r, "Org", "org@example.com", "organization")

	projectID := createProject(t, r, companyToken)

	w := setProjectStatus(t, r, orgToken, projectID, "public")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin review, got %d", w.Code)
	}

	// Even the owning company cannot self-approve.
	w = setProjectStatus(t, r, companyToken, projectID, "public")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for owner self-approval, got %d", w.Code)
	}

	var project models.Project
	db.DB.First(&project, projectID)
	if project.Status != models.ProjectStatusReview {
		t.Errorf("project status = %s after unauthorized decisions, want review", project.Status)
	}
}

func TestCloseProject(t *testing.T) {
	r := setupServer(t)
	companyToken, _ := register(t, r, "Acme", "acme@example.com", "company")
	otherCompanyToken, _ := register(t, r, "Rival", "rival@example.com", "company")
	adminToken, adminID := register(t, r, "Admin", "admin@example.com", "company")
	grantAdmin(t, adminID)

	projectID := createProject(t, r, companyToken)

	// Only public projects can be closed.
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/close", projectID), companyToken, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("closing a project in review: expected 409, got %d", w.Code)
	}

	approveProject(t, r, adminToken, projectID)

	// Another company cannot close someone else's project.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/close", projectID), otherCompanyToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign close: expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/close", projectID), companyToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Closed is terminal: admins cannot reopen it.
	w = setProjectStatus(t, r, adminToken, projectID, "review")
	if w.Code != http.StatusConflict {
		t.Errorf("reopening closed project: expected 409, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/close", projectID), companyToken, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("double close: expected 409, got %d", w.Code)
	}
}
