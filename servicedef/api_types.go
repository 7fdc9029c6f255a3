// Package servicedef defines the request payloads and response contracts of
// the code-review service API that the harness exercises.
package servicedef

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ReviewRequest is the body of POST /review.
type ReviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Filename string `json:"filename,omitempty"`
}

// UserFields are the fields a GET /auth/me response must contain.
var UserFields = []string{"id", "email", "name", "created_at"}

// ReviewFields are the fields a review response must contain, whether the
// analysis ran on the primary path or the fallback path.
var ReviewFields = []string{
	"id",
	"overall_score",
	"quality_score",
	"security_score",
	"performance_score",
	"issues",
	"summary",
	"recommendations",
}

// StatsFields are the fields a GET /auth/stats response must contain.
var StatsFields = []string{
	"total_reviews",
	"average_score",
	"languages_used",
	"recent_activity",
	"score_trend",
}
