package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/models"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 100
)

type RecommendationResponse struct {
	Project     ProjectResponse `json:"project"`
	RatingAvg   float64         `json:"rating_avg"`
	RatingCount int             `json:"rating_count"`
}

type companyRatingAggregate struct {
	RateeID uint
	Avg     float64
	Count   int
}

// GetRecommendations ranks public projects by the owning company's average
// received score, rating count as tiebreaker, newest first after that.
func GetRecommendations(ctx *gin.Context) {
	targetType := ctx.DefaultQuery("target_type", string(models.RoleCompany))

	if targetType != string(models.RoleCompany) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Only company recommendations are supported"})
		return
	}

	limit := defaultRecommendationLimit

	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	var projects []models.Project

	if err := db.DB.Where("status = ?", models.ProjectStatusPublic).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	var aggregates []companyRatingAggregate

	err := db.DB.Model(&models.Rating{}).
		Select("ratee_id, AVG(score) AS avg, COUNT(*) AS count").
		Where("ratee_type = ?", models.RoleCompany).
		Group("ratee_id").
		Scan(&aggregates).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ratings"})
		return
	}

	byCompany := make(map[uint]companyRatingAggregate, len(aggregates))

	for _, aggregate := range aggregates {
		byCompany[aggregate.RateeID] = aggregate
	}

	response := make([]RecommendationResponse, 0, len(projects))

	for _, project := range projects {
		aggregate := byCompany[project.CompanyID]
		response = append(response, RecommendationResponse{
			Project:     toProjectResponse(project),
			RatingAvg:   aggregate.Avg,
			RatingCount: aggregate.Count,
		})
	}

	sort.SliceStable(response, func(i, j int) bool {
		if response[i].RatingAvg != response[j].RatingAvg {
			return response[i].RatingAvg > response[j].RatingAvg
		}
		if response[i].RatingCount != response[j].RatingCount {
			return response[i].RatingCount > response[j].RatingCount
		}
		return response[i].Project.CreatedAt.After(response[j].Project.CreatedAt)
	})

	if len(response) > limit {
		response = response[:limit]
	}

	ctx.JSON(http.StatusOK, response)
}
