package workflow

import (
	"fmt"

	"github.com/union-match/union-match/internal/models"
)

// Party identifies one side of an application: the owning company or the
// applicant (organization or student).
type Party struct {
	Type models.UserRole
	ID   uint
}

// IsRatingEligible reports whether an application has reached the state that
// unlocks mutual rating.
func IsRatingEligible(app models.Application) bool {
	return NormalizeApplicationStatus(string(app.Status)) == models.ApplicationStatusCompleted
}

// ApplicantOf returns the applicant party of an application. Legacy rows may
// carry neither reference, in which case ok is false.
func ApplicantOf(app models.Application) (Party, bool) {
	if app.OrganizationID != nil {
		return Party{Type: models.RoleOrganization, ID: *app.OrganizationID}, true
	}
	if app.StudentID != nil {
		return Party{Type: models.RoleStudent, ID: *app.StudentID}, true
	}
	return Party{}, false
}

// RateeOf resolves the counterparty a rater is reviewing: the company rates
// the applicant, the applicant rates the company. Callers that are not a
// party to the application get a forbidden error.
func RateeOf(app models.Application, project models.Project, rater Party) (Party, error) {
	if rater.Type == models.RoleCompany && rater.ID == project.CompanyID {
		applicant, ok := ApplicantOf(app)
		if !ok {
			return Party{}, NewError(CodeValidation, "application has no rateable applicant")
		}
		return applicant, nil
	}

	if applicant, ok := ApplicantOf(app); ok && applicant == rater {
		return Party{Type: models.RoleCompany, ID: project.CompanyID}, nil
	}

	return Party{}, NewError(CodeForbidden, "not a party to this application")
}

// ValidateScore checks the overall score range.
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return NewError(CodeValidation, "score must be between 1 and 5")
	}
	return nil
}

// ValidateSubScore checks an optional sub-score; zero means unset.
func ValidateSubScore(name string, score int) error {
	if score == 0 {
		return nil
	}
	if score < 1 || score > 5 {
		return NewError(CodeValidation, fmt.Sprintf("%s score must be between 1 and 5", name))
	}
	return nil
}
