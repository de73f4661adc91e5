package onboarding

import (
	"net/http"

	"github.com/ManuelReschke/ConnectX/app/models"
)

// Profile is the name pair returned to the web layer after onboarding.
type Profile struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Slug is the dashboard path segment of the profile.
func (p *Profile) Slug() string {
	return p.FirstName + p.LastName
}

// OnboardingResult is 200 (existing account), 201 (created) or 500.
type OnboardingResult struct {
	Status int      `json:"status"`
	Data   *Profile `json:"data,omitempty"`
	Err    error    `json:"-"`
}

// UserInfoResult is 200 with the account, 404 or 500.
type UserInfoResult struct {
	Status int             `json:"status"`
	Data   *models.Account `json:"data,omitempty"`
	Err    error           `json:"-"`
}

// OK reports a 200 or 201 outcome.
func (r OnboardingResult) OK() bool {
	return r.Status == http.StatusOK || r.Status == http.StatusCreated
}

func profileOf(a *models.Account) *Profile {
	return &Profile{FirstName: a.FirstName, LastName: a.LastName}
}

func failedOnboarding(err *Error) OnboardingResult {
	return OnboardingResult{Status: http.StatusInternalServerError, Err: err}
}
