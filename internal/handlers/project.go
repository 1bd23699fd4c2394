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

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ContactInfo string `json:"contact_info" binding:"required"`
	Budget      string `json:"budget"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

type ReviewDecisionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ProjectResponse is the public view: contact info is never included.
type ProjectResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Budget      string               `json:"budget,omitempty"`
	Deadline    *time.Time           `json:"deadline,omitempty"`
	Status      models.ProjectStatus `json:"status"`
	CompanyID   uint                 `json:"company_id"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ProjectDetailResponse adds the private fields owners and admins see.
type ProjectDetailResponse struct {
	ProjectResponse
	ContactInfo string `json:"contact_info"`
}

func toProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Budget:      project.Budget,
		Deadline:    project.Deadline,
		Status:      project.Status,
		CompanyID:   project.CompanyID,
		CreatedAt:   project.CreatedAt,
	}
}

func toProjectDetailResponse(project models.Project) ProjectDetailResponse {
	return ProjectDetailResponse{
		ProjectResponse: toProjectResponse(project),
		ContactInfo:     project.ContactInfo,
	}
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title, description and contact info are required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var deadline *time.Time

	if req.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Deadline must be YYYY-MM-DD"})
			return
		}
		deadline = &parsed
	}

	// Every new project starts in review, whatever the caller sends.
	project := models.Project{
		CompanyID:   userID,
		Title:       req.Title,
		Description: req.Description,
		ContactInfo: req.ContactInfo,
		Budget:      req.Budget,
		Deadline:    deadline,
		Status:      models.ProjectStatusReview,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, toProjectDetailResponse(project))
}

// ListPublicProjects returns the public marketplace listing.
func ListPublicProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Where("status = ?", models.ProjectStatusPublic).Order("created_at DESC").Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject serves the redacted public view to everyone; the owning company
// and admins also see non-public projects and the contact info.
func GetProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.Where("id = ?", ctx.Param("project_id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)
	isOwner := err == nil && currentUser.ID == project.CompanyID
	isAdmin := err == nil && currentUser.IsAdmin

	if isOwner || isAdmin {
		ctx.JSON(http.StatusOK, toProjectDetailResponse(project))
		return
	}

	if !workflow.IsPubliclyVisible(project) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

// ListMyProjects returns the authenticated company's own projects, any status.
func ListMyProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("company_id = ?", userID).Order("created_at DESC").Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectDetailResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectDetailResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

// ReviewProject applies an admin review decision to a project.
func ReviewProject(ctx *gin.Context) {
	var req ReviewDecisionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	next, err := workflow.ParseProjectStatus(req.Status)

	if err != nil {
		respondWorkflowError(ctx, err)
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

	if err := workflow.ValidateReviewDecision(project.Status, next); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := db.DB.Model(&project).Update("status", next).Error; err != nil {
		log.Printf("Failed to update project status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	project.Status = next

	ctx.JSON(http.StatusOK, gin.H{
		"message": workflow.ReviewConfirmation(next),
		"project": toProjectDetailResponse(project),
	})
}

// CloseProject lets the owning company close a public project.
func CloseProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ? AND company_id = ?", ctx.Param("project_id"), userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := workflow.ValidateClose(project.Status); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	if err := db.DB.Model(&project).Update("status", models.ProjectStatusClosed).Error; err != nil {
		log.Printf("Failed to close project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	project.Status = models.ProjectStatusClosed

	ctx.JSON(http.StatusOK, gin.H{
		"message": workflow.ReviewConfirmation(models.ProjectStatusClosed),
		"project": toProjectDetailResponse(project),
	})
}

// ListProjectsForReview is the admin review queue, optionally filtered by
// status.
func ListProjectsForReview(ctx *gin.Context) {
	query := db.DB.Order("created_at ASC")

	if raw := ctx.Query("status"); raw != "" {
		status, err := workflow.ParseProjectStatus(raw)
		if err != nil {
			respondWorkflowError(ctx, err)
			return
		}
		query = query.Where("status = ?", status)
	}

	var projects []models.Project

	if err := query.Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectDetailResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectDetailResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}
