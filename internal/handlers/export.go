package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/union-match/union-match/db"
)

type applicationExportRow struct {
	ID               uint
	ProjectTitle     string
	OrganizationName string
	ContactInfo      string
	Appeal           string
	CreatedAt        time.Time
}

// flattenAppeal collapses multi-line appeal text into a single CSV cell.
func flattenAppeal(appeal string) string {
	replacer := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	return replacer.Replace(appeal)
}

// ExportApplicationsCSV streams the administrative application report.
func ExportApplicationsCSV(ctx *gin.Context) {
	var rows []applicationExportRow

	err := db.DB.Table("applications").
		Select("applications.id, projects.title AS project_title, applications.organization_name, applications.contact_info, applications.appeal, applications.created_at").
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("applications.deleted_at IS NULL").
		Order("applications.created_at ASC").
		Scan(&rows).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	filename := fmt.Sprintf("applications-%s.csv", time.Now().Format("2006-01-02"))

	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Status(http.StatusOK)

	writer := csv.NewWriter(ctx.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"id", "project_title", "organization_name", "contact_info", "appeal", "created_at"})

	for _, row := range rows {
		_ = writer.Write([]string{
			fmt.Sprintf("%d", row.ID),
			row.ProjectTitle,
			row.OrganizationName,
			row.ContactInfo,
			flattenAppeal(row.Appeal),
			row.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
}
