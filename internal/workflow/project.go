package workflow

import (
	"fmt"
	"strings"

	"github.com/union-match/union-match/internal/models"
)

// ParseProjectStatus accepts only the four known statuses. Unknown values are
// rejected at the boundary instead of being stored verbatim.
func ParseProjectStatus(raw string) (models.ProjectStatus, error) {
	status := models.ProjectStatus(strings.ToLower(strings.TrimSpace(raw)))

	switch status {
	case models.ProjectStatusReview, models.ProjectStatusPublic, models.ProjectStatusRejected, models.ProjectStatusClosed:
		return status, nil
	}

	return "", NewError(CodeValidation, fmt.Sprintf("unknown project status %q", raw))
}

// ValidateReviewDecision guards the admin transitions:
//
//	review --approve--> public
//	review --reject--> rejected
//	public --revert--> review
//	rejected --revert--> review
//
// Closing is the owning company's transition, not an admin decision, and
// closed is terminal.
func ValidateReviewDecision(current, next models.ProjectStatus) error {
	if next == models.ProjectStatusClosed {
		return NewError(CodeValidation, "closing a project is done by the owning company")
	}

	if current == models.ProjectStatusClosed {
		return NewError(CodeConflict, "project is closed")
	}

	allowed := map[models.ProjectStatus][]models.ProjectStatus{
		models.ProjectStatusReview:   {models.ProjectStatusPublic, models.ProjectStatusRejected},
		models.ProjectStatusPublic:   {models.ProjectStatusReview},
		models.ProjectStatusRejected: {models.ProjectStatusReview},
	}

	for _, status := range allowed[current] {
		if status == next {
			return nil
		}
	}

	return NewError(CodeConflict, fmt.Sprintf("cannot move project from %s to %s", current, next))
}

// ValidateClose guards the company's public --> closed transition.
func ValidateClose(current models.ProjectStatus) error {
	if current == models.ProjectStatusClosed {
		return NewError(CodeConflict, "project is already closed")
	}

	if current != models.ProjectStatusPublic {
		return NewError(CodeConflict, fmt.Sprintf("cannot close a project in %s status", current))
	}

	return nil
}

// IsPubliclyVisible reports whether a project appears in public listings.
func IsPubliclyVisible(project models.Project) bool {
	return project.Status == models.ProjectStatusPublic
}

// ReviewConfirmation is the confirmation message surfaced after a review
// decision.
func ReviewConfirmation(status models.ProjectStatus) string {
	switch status {
	case models.ProjectStatusPublic:
		return "Project approved"
	case models.ProjectStatusRejected:
		return "Project rejected"
	case models.ProjectStatusReview:
		return "Project returned to review"
	case models.ProjectStatusClosed:
		return "Project closed"
	}
	return "Project status updated"
}
