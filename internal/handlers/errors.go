package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/internal/workflow"
)

// respondWorkflowError maps the workflow error taxonomy onto HTTP statuses.
func respondWorkflowError(ctx *gin.Context, err error) {
	switch {
	case workflow.Is(err, workflow.CodeValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case workflow.Is(err, workflow.CodeUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case workflow.Is(err, workflow.CodeForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case workflow.Is(err, workflow.CodeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case workflow.Is(err, workflow.CodeConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Unhandled workflow error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
