package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/union-match/union-match/db"
	"github.com/union-match/union-match/internal/auth"
	"github.com/union-match/union-match/internal/models"
	"github.com/union-match/union-match/internal/types"
	"github.com/union-match/union-match/internal/workflow"
)

type AuthenticatedUser struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	IsAdmin bool            `json:"is_admin"`
}

// extractToken looks for a bearer token first and falls back to the token
// cookie the auth handlers mirror the session into.
func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}

func resolveUser(tokenString string) (AuthenticatedUser, bool) {
	token, err := auth.VerifyJWT(tokenString)

	if err != nil || !token.Valid {
		return AuthenticatedUser{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return AuthenticatedUser{}, false
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return AuthenticatedUser{}, false
	}

	var user models.User

	if err := db.DB.Where("id = ?", uint(userIDFloat)).First(&user).Error; err != nil {
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		IsAdmin: workflow.IsAdmin(user),
	}, true
}

// abortUnauthorized clears the session cookie along with the 401: any auth
// failure on a protected route invalidates the whole local session.
func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.SetCookie("token", "", -1, "/", "", true, true)
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		user, ok := resolveUser(tokenString)

		if !ok {
			abortUnauthorized(ctx, "Invalid or expired token")
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a valid token is present but
// lets anonymous requests through, for routes with a public read view.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenString := extractToken(ctx); tokenString != "" {
			if user, ok := resolveUser(tokenString); ok {
				ctx.Set(types.ContextUserKey, user)
			}
		}
		ctx.Next()
	}
}

// RequireRole gates a route to the given actor kinds. Admins pass regardless
// of their account role.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			abortUnauthorized(ctx, "User not authenticated")
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok {
			abortUnauthorized(ctx, "User not authenticated")
			return
		}

		if user.IsAdmin {
			ctx.Next()
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		ctx.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			abortUnauthorized(ctx, "User not authenticated")
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok || !user.IsAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
