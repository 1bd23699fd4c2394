package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/models"
	"github.com/union-match/union-match/internal/utils"
	"github.com/union-match/union-match/internal/workflow"
	"gorm.io/gorm"
)

type SubmitApplicationRequest struct {
	ProjectID        uint   `json:"project_id" binding:"required"`
	Appeal           string `json:"appeal" binding:"required"`
	ContactInfo      string `json:"contact_info" binding:"required"`
	OrganizationName string `json:"organization_name"`
}

type ApplicationDecisionRequest struct {
	Status string `json:"status" binding:"required"`
}

type ApplicationResponse struct {
	ID               uint                     `json:"id"`
	ProjectID        uint                     `json:"project_id"`
	OrganizationID   *uint                    `json:"organization_id,omitempty"`
	StudentID        *uint                    `json:"student_id,omitempty"`
	OrganizationName string                   `json:"organization_name,omitempty"`
	Appeal           string                   `json:"appeal"`
	ContactInfo      string                   `json:"contact_info"`
	Status           models.ApplicationStatus `json:"status"`
	AcceptedAt       *time.Time               `json:"accepted_at,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
}

func toApplicationResponse(app models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               app.ID,
		ProjectID:        app.ProjectID,
		OrganizationID:   app.OrganizationID,
		StudentID:        app.StudentID,
		OrganizationName: app.OrganizationName,
		Appeal:           app.Appeal,
		ContactInfo:      app.ContactInfo,
		Status:           workflow.NormalizeApplicationStatus(string(app.Status)),
		AcceptedAt:       app.AcceptedAt,
		CreatedAt:        app.CreatedAt,
	}
}

// SubmitApplication creates a pending application from the session's
// organization or student against a public project.
func SubmitApplication(ctx *gin.Context) {
	var req SubmitApplicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project, appeal and contact info are required"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Log in as an organization or student to apply"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ?", req.ProjectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if !workflow.IsPubliclyVisible(project) {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Project is not accepting applications"})
		return
	}

	application := models.Application{
		ProjectID:        project.ID,
		Appeal:           req.Appeal,
		ContactInfo:      req.ContactInfo,
		OrganizationName: req.OrganizationName,
		Status:           models.ApplicationStatusPending,
	}

	switch currentUser.Role {
	case models.RoleOrganization:
		application.OrganizationID = &currentUser.ID
	case models.RoleStudent:
		application.StudentID = &currentUser.ID
	default:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Log in as an organization or student to apply"})
		return
	}

	if err := db.DB.Create(&application).Error; err != nil {
		log.Printf("Failed to create application: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	ctx.JSON(http.StatusCreated, toApplicationResponse(application))
}

// ListProjectApplications returns a project's applications to its owning
// company (or an admin), with the pending/accepted derived views.
func ListProjectApplications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ?", ctx.Param("project_id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if project.CompanyID != currentUser.ID && !currentUser.IsAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var applications []models.Application

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at ASC").Find(&applications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	all := make([]ApplicationResponse, 0, len(applications))
	pending := make([]ApplicationResponse, 0, len(applications))
	accepted := make([]ApplicationResponse, 0, len(applications))

	for _, app := range applications {
		response := toApplicationResponse(app)
		all = append(all, response)

		if workflow.IsPendingView(app.Status) {
			pending = append(pending, response)
		}
		if workflow.IsAcceptedView(app.Status) {
			accepted = append(accepted, response)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"applications": all,
		"pending":      pending,
		"accepted":     accepted,
	})
}

// ListMyApplications returns the session applicant's own applications.
func ListMyApplications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Order("created_at DESC")

	switch currentUser.Role {
	case models.RoleOrganization:
		query = query.Where("organization_id = ?", currentUser.ID)
	case models.RoleStudent:
		query = query.Where("student_id = ?", currentUser.ID)
	default:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var applications []models.Application

	if err := query.Find(&applications).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	response := make([]ApplicationResponse, 0, len(applications))

	for _, app := range applications {
		response = append(response, toApplicationResponse(app))
	}

	ctx.JSON(http.StatusOK, response)
}

// DecideApplication applies an accept/reject/complete decision. Only the
// company owning the referenced project may decide, checked server-side.
func DecideApplication(ctx *gin.Context) {
	var req ApplicationDecisionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	next, err := workflow.ParseApplicationDecision(req.Status)

	if err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	var application models.Application

	if err := db.DB.Where("id = ?", ctx.Param("application_id")).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ?", application.ProjectID).First(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if project.CompanyID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Application belongs to another company's project"})
		return
	}

	current := workflow.NormalizeApplicationStatus(string(application.Status))

	if err := workflow.ValidateApplicationTransition(current, next); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	updates := map[string]interface{}{"status": next}

	// AcceptedAt is stamped together with the status change and never cleared.
	if next == models.ApplicationStatusAccepted && application.AcceptedAt == nil {
		now := time.Now()
		updates["accepted_at"] = now
		application.AcceptedAt = &now
	}

	if err := db.DB.Model(&application).Updates(updates).Error; err != nil {
		log.Printf("Failed to update application status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	application.Status = next

	ctx.JSON(http.StatusOK, toApplicationResponse(application))
}
