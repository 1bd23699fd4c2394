package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/db"
)

func HealthCheck(c *gin.Context) {
	status := "ok"

	if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}

	c.JSON(200, gin.H{
		"status":    status,
		"message":   "UNION Match is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
