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

type SubmitRatingRequest struct {
	ApplicationID   uint   `json:"application_id" binding:"required"`
	Score           int    `json:"score" binding:"required"`
	Comment         string `json:"comment"`
	Communication   int    `json:"communication"`
	Quality         int    `json:"quality"`
	Punctuality     int    `json:"punctuality"`
	Professionalism int    `json:"professionalism"`
}

type RatingResponse struct {
	ID              uint            `json:"id"`
	ProjectID       uint            `json:"project_id"`
	ApplicationID   uint            `json:"application_id"`
	RaterType       models.UserRole `json:"rater_type"`
	RaterID         uint            `json:"rater_id"`
	RateeType       models.UserRole `json:"ratee_type"`
	RateeID         uint            `json:"ratee_id"`
	Score           int             `json:"score"`
	Communication   int             `json:"communication,omitempty"`
	Quality         int             `json:"quality,omitempty"`
	Punctuality     int             `json:"punctuality,omitempty"`
	Professionalism int             `json:"professionalism,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toRatingResponse(rating models.Rating) RatingResponse {
	return RatingResponse{
		ID:              rating.ID,
		ProjectID:       rating.ProjectID,
		ApplicationID:   rating.ApplicationID,
		RaterType:       rating.RaterType,
		RaterID:         rating.RaterID,
		RateeType:       rating.RateeType,
		RateeID:         rating.RateeID,
		Score:           rating.Score,
		Communication:   rating.Communication,
		Quality:         rating.Quality,
		Punctuality:     rating.Punctuality,
		Professionalism: rating.Professionalism,
		Comment:         rating.Comment,
		CreatedAt:       rating.CreatedAt,
	}
}

func validateRatingScores(req SubmitRatingRequest) error {
	if err := workflow.ValidateScore(req.Score); err != nil {
		return err
	}

	subScores := map[string]int{
		"communication":   req.Communication,
		"quality":         req.Quality,
		"punctuality":     req.Punctuality,
		"professionalism": req.Professionalism,
	}

	for name, score := range subScores {
		if err := workflow.ValidateSubScore(name, score); err != nil {
			return err
		}
	}

	return nil
}

// SubmitRating records one side of the mutual review. It is an upsert keyed
// on (application, rater): submitting again edits the existing rating instead
// of inserting a duplicate.
func SubmitRating(ctx *gin.Context) {
	var req SubmitRatingRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Application and score are required"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := validateRatingScores(req); err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	var application models.Application

	if err := db.DB.Where("id = ?", req.ApplicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	if !workflow.IsRatingEligible(application) {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Ratings unlock once the application is completed"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ?", application.ProjectID).First(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	rater := workflow.Party{Type: currentUser.Role, ID: currentUser.ID}
	ratee, err := workflow.RateeOf(application, project, rater)

	if err != nil {
		respondWorkflowError(ctx, err)
		return
	}

	var existing models.Rating

	err = db.DB.Where("application_id = ? AND rater_type = ? AND rater_id = ?",
		application.ID, rater.Type, rater.ID).First(&existing).Error

	if err == nil {
		updates := map[string]interface{}{
			"score":           req.Score,
			"communication":   req.Communication,
			"quality":         req.Quality,
			"punctuality":     req.Punctuality,
			"professionalism": req.Professionalism,
			"comment":         req.Comment,
		}

		if err := db.DB.Model(&existing).Updates(updates).Error; err != nil {
			log.Printf("Failed to update rating: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
			return
		}

		existing.Score = req.Score
		existing.Communication = req.Communication
		existing.Quality = req.Quality
		existing.Punctuality = req.Punctuality
		existing.Professionalism = req.Professionalism
		existing.Comment = req.Comment

		ctx.JSON(http.StatusOK, toRatingResponse(existing))
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing rating: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	rating := models.Rating{
		ProjectID:       project.ID,
		ApplicationID:   application.ID,
		RaterType:       rater.Type,
		RaterID:         rater.ID,
		RateeType:       ratee.Type,
		RateeID:         ratee.ID,
		Score:           req.Score,
		Communication:   req.Communication,
		Quality:         req.Quality,
		Punctuality:     req.Punctuality,
		Professionalism: req.Professionalism,
		Comment:         req.Comment,
	}

	// The composite unique index backstops a concurrent double submit.
	if err := db.DB.Create(&rating).Error; err != nil {
		log.Printf("Failed to create rating: %v", err)
		ctx.JSON(http.StatusConflict, gin.H{"error": "Rating already submitted"})
		return
	}

	ctx.JSON(http.StatusCreated, toRatingResponse(rating))
}

// ListApplicationRatings shows both sides' ratings to the application's
// parties (and admins).
func ListApplicationRatings(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
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

	if !currentUser.IsAdmin {
		rater := workflow.Party{Type: currentUser.Role, ID: currentUser.ID}
		if _, err := workflow.RateeOf(application, project, rater); err != nil {
			respondWorkflowError(ctx, err)
			return
		}
	}

	var ratings []models.Rating

	if err := db.DB.Where("application_id = ?", application.ID).Order("created_at ASC").Find(&ratings).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ratings"})
		return
	}

	response := make([]RatingResponse, 0, len(ratings))

	for _, rating := range ratings {
		response = append(response, toRatingResponse(rating))
	}

	ctx.JSON(http.StatusOK, response)
}
