package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/models"
	"github.com/union-match/union-match/internal/utils"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name         string   `json:"name"`
	ContactEmail string   `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string   `json:"contact_phone"`
	LogoURL      string   `json:"logo_url"`
	University   string   `json:"university"`
	Department   string   `json:"department"`
	Grade        string   `json:"grade"`
	Skills       []string `json:"skills"`
}

// GetMyProfile returns the session actor's profile record.
func GetMyProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile interface{}
	var lookupErr error

	switch currentUser.Role {
	case models.RoleCompany:
		var company models.CompanyProfile
		lookupErr = db.DB.Where("user_id = ?", currentUser.ID).First(&company).Error
		profile = company
	case models.RoleOrganization:
		var organization models.OrganizationProfile
		lookupErr = db.DB.Where("user_id = ?", currentUser.ID).First(&organization).Error
		profile = organization
	case models.RoleStudent:
		var student models.StudentProfile
		lookupErr = db.DB.Where("user_id = ?", currentUser.ID).First(&student).Error
		profile = student
	default:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if lookupErr != nil {
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateMyProfile is the self-service profile edit for whichever actor kind
// the session carries. Only provided fields change.
func UpdateMyProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	}

	var updateErr error

	switch currentUser.Role {
	case models.RoleCompany:
		if req.LogoURL != "" {
			updates["logo_url"] = req.LogoURL
		}
		updateErr = applyProfileUpdates(ctx, &models.CompanyProfile{}, currentUser.ID, updates)
	case models.RoleOrganization:
		if req.ContactPhone != "" {
			updates["contact_phone"] = req.ContactPhone
		}
		updateErr = applyProfileUpdates(ctx, &models.OrganizationProfile{}, currentUser.ID, updates)
	case models.RoleStudent:
		if req.University != "" {
			updates["university"] = req.University
		}
		if req.Department != "" {
			updates["department"] = req.Department
		}
		if req.Grade != "" {
			updates["grade"] = req.Grade
		}
		if req.Skills != nil {
			updates["skills"] = pq.StringArray(req.Skills)
		}
		updateErr = applyProfileUpdates(ctx, &models.StudentProfile{}, currentUser.ID, updates)
	default:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if updateErr != nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// applyProfileUpdates writes the update map and handles the HTTP response on
// failure; a non-nil return means a response was already sent.
func applyProfileUpdates(ctx *gin.Context, model interface{}, userID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		err := errors.New("no valid fields to update")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return err
	}

	result := db.DB.Model(model).Where("user_id = ?", userID).Updates(updates)

	if result.Error != nil {
		log.Printf("Failed to update profile: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return result.Error
	}

	if result.RowsAffected == 0 {
		err := errors.New("profile not found")
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return err
	}

	return nil
}
