package workflow

import (
	"fmt"
	"strings"

	"github.com/union-match/union-match/internal/models"
)

// NormalizeApplicationStatus maps legacy representations of "no status yet"
// (absent, null, empty string) onto the explicit pending default. Known
// statuses pass through case-insensitively.
func NormalizeApplicationStatus(raw string) models.ApplicationStatus {
	status := models.ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))

	switch status {
	case models.ApplicationStatusAccepted, models.ApplicationStatusRejected, models.ApplicationStatusCompleted:
		return status
	}

	return models.ApplicationStatusPending
}

// ParseApplicationDecision accepts the company-side decisions: accepted,
// rejected, completed.
func ParseApplicationDecision(raw string) (models.ApplicationStatus, error) {
	status := models.ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))

	switch status {
	case models.ApplicationStatusAccepted, models.ApplicationStatusRejected, models.ApplicationStatusCompleted:
		return status, nil
	}

	return "", NewError(CodeValidation, fmt.Sprintf("unknown application decision %q", raw))
}

// ValidateApplicationTransition guards
//
//	pending --accept--> accepted --complete--> completed
//	pending --reject--> rejected
//
// with rejected and completed terminal.
func ValidateApplicationTransition(current, next models.ApplicationStatus) error {
	switch current {
	case models.ApplicationStatusPending:
		if next == models.ApplicationStatusAccepted || next == models.ApplicationStatusRejected {
			return nil
		}
	case models.ApplicationStatusAccepted:
		if next == models.ApplicationStatusCompleted {
			return nil
		}
	}

	return NewError(CodeConflict, fmt.Sprintf("cannot move application from %s to %s", current, next))
}

// IsPendingView reports membership in the "pending" derived view, which holds
// everything not yet accepted or completed (rejected rows included).
func IsPendingView(status models.ApplicationStatus) bool {
	normalized := NormalizeApplicationStatus(string(status))
	return normalized != models.ApplicationStatusAccepted && normalized != models.ApplicationStatusCompleted
}

// IsAcceptedView reports membership in the "accepted" derived view.
func IsAcceptedView(status models.ApplicationStatus) bool {
	return NormalizeApplicationStatus(string(status)) == models.ApplicationStatusAccepted
}
