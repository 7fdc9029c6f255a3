// Package mockservice provides an in-memory stand-in for the code-review
// service, implementing just enough of its HTTP contract for the full
// scenario suite to run hermetically in tests.
package mockservice

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

const defaultSummary = "The code contains a hardcoded credential and an inefficient loop; both should be addressed."

type user struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Created  string `json:"created_at"`
	password string
}

type review map[string]interface{}

// Service is one in-memory service instance. Create a fresh one per test.
type Service struct {
	mu      sync.Mutex
	users   map[string]*user  // keyed by email
	tokens  map[string]string // token -> email
	reviews map[string]review
	order   []string // review ids in creation order
	nextID  int

	// Summary overrides the canned review summary; tests set it to simulate
	// the degraded analysis path.
	Summary string
}

func New() *Service {
	return &Service{
		users:   make(map[string]*user),
		tokens:  make(map[string]string),
		reviews: make(map[string]review),
	}
}

// Handler returns the HTTP surface of the mock service.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.root).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", s.signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)
	r.HandleFunc("/auth/resend-verification", s.resendVerification).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify/{token}", s.verify).Methods(http.MethodGet)
	r.HandleFunc("/auth/stats", s.stats).Methods(http.MethodGet)
	r.HandleFunc("/review", s.createReview).Methods(http.MethodPost)
	r.HandleFunc("/review/{id}", s.getReview).Methods(http.MethodGet)
	r.HandleFunc("/upload-review", s.uploadReview).Methods(http.MethodPost)
	r.HandleFunc("/history", s.history).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Service) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CodeMind AI code review API"})
}

func (s *Service) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid signup payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.nextID++
	u := &user{
		ID:       fmt.Sprintf("user-%d", s.nextID),
		Email:    req.Email,
		Name:     req.Name,
		Created:  time.Now().UTC().Format(time.RFC3339),
		password: req.Password,
	}
	s.users[req.Email] = u
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": s.issueTokenLocked(req.Email),
		"token_type":   "bearer",
	})
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid login payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[req.Email]
	if !exists || u.password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": s.issueTokenLocked(req.Email),
		"token_type":   "bearer",
	})
}

func (s *Service) issueTokenLocked(email string) string {
	s.nextID++
	token := fmt.Sprintf("tok-%d", s.nextID)
	s.tokens[token] = email
	return token
}

// bearerUser resolves the Authorization header to a user, or nil.
func (s *Service) bearerUser(r *http.Request) *user {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[strings.TrimPrefix(auth, "Bearer ")]
	if !ok {
		return nil
	}
	return s.users[email]
}

func (s *Service) me(w http.ResponseWriter, r *http.Request) {
	u := s.bearerUser(r)
	if u == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Service) resendVerification(w http.ResponseWriter, r *http.Request) {
	if s.bearerUser(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent"})
}

func (s *Service) verify(w http.ResponseWriter, r *http.Request) {
	// The mock never issues verification tokens, so every lookup misses.
	writeDetail(w, http.StatusNotFound, "Invalid verification token")
}

func (s *Service) createReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Language string `json:"language"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid review payload")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "code must not be empty")
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = "snippet"
	}
	rv := s.storeReview(filename, req.Language, s.bearerUser(r))
	writeJSON(w, http.StatusOK, rv)
}

func (s *Service) uploadReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "missing file field")
		return
	}
	defer file.Close()
	if _, err := io.ReadAll(file); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "unreadable file")
		return
	}
	rv := s.storeReview(header.Filename, languageForFile(header.Filename), s.bearerUser(r))
	writeJSON(w, http.StatusOK, rv)
}

func languageForFile(name string) string {
	switch path.Ext(name) {
	case ".py":
		return "python"
	case ".js":
		return "javascript"
	case ".go":
		return "go"
	default:
		return "plaintext"
	}
}

func (s *Service) storeReview(filename, language string, owner *user) review {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("rev-%d", s.nextID)
	summary := s.Summary
	if summary == "" {
		summary = defaultSummary
	}
	rv := review{
		"id":                id,
		"filename":          filename,
		"language":          language,
		"overall_score":     72.5,
		"quality_score":     70.0,
		"security_score":    55.0,
		"performance_score": 68.0,
		"issues": []map[string]interface{}{
			{"type": "security", "severity": "high", "message": "Hardcoded credential", "line": 1},
			{"type": "performance", "severity": "medium", "message": "Busy loop with console output", "line": 3},
		},
		"summary":         summary,
		"recommendations": []string{"Move secrets out of source", "Avoid tight logging loops"},
		"created_at":      time.Now().UTC().Format(time.RFC3339),
	}
	if owner != nil {
		rv["user_id"] = owner.ID
	}
	s.reviews[id] = rv
	s.order = append(s.order, id)
	return rv
}

func (s *Service) getReview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rv, ok := s.reviews[mux.Vars(r)["id"]]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Review not found")
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (s *Service) history(w http.ResponseWriter, r *http.Request) {
	u := s.bearerUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]review, 0, len(s.order))
	// newest first
	for i := len(s.order) - 1; i >= 0; i-- {
		rv := s.reviews[s.order[i]]
		if u != nil && rv["user_id"] != u.ID {
			continue
		}
		list = append(list, rv)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Service) stats(w http.ResponseWriter, r *http.Request) {
	u := s.bearerUser(r)
	if u == nil {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var total int
	var scoreSum float64
	languages := make([]string, 0)
	seenLanguage := make(map[string]bool)
	recent := make([]map[string]interface{}, 0)
	trend := make([]float64, 0)
	for _, id := range s.order {
		rv := s.reviews[id]
		if rv["user_id"] != u.ID {
			continue
		}
		total++
		score := rv["overall_score"].(float64)
		scoreSum += score
		trend = append(trend, score)
		if lang, _ := rv["language"].(string); lang != "" && !seenLanguage[lang] {
			seenLanguage[lang] = true
			languages = append(languages, lang)
		}
		recent = append(recent, map[string]interface{}{
			"id":            rv["id"],
			"filename":      rv["filename"],
			"overall_score": score,
			"created_at":    rv["created_at"],
		})
	}
	average := 0.0
	if total > 0 {
		average = scoreSum / float64(total)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_reviews":   total,
		"average_score":   average,
		"languages_used":  languages,
		"recent_activity": recent,
		"score_trend":     trend,
	})
}
