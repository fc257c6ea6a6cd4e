package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondFail(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: msg})
}

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		respondFail(w, http.StatusNotFound, "not found")
		return
	}
	respondFail(w, http.StatusInternalServerError, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// Server bundles the stores behind the HTTP surface.
type Server struct {
	store *Store
	auth  *AuthService
	files *FSStore

	adminEmail    string
	adminPassHash string
}

func NewServer(store *Store, auth *AuthService, files *FSStore, adminEmail, adminPassHash string) *Server {
	return &Server{store: store, auth: auth, files: files, adminEmail: adminEmail, adminPassHash: adminPassHash}
}

/* ---------------- auth ---------------- */

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Email != s.adminEmail || !CheckPassword(s.adminPassHash, req.Password) {
		respondFail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	tok, err := s.auth.IssueJWT(req.Email)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{
		"token": tok,
		"admin": map[string]string{"email": req.Email, "name": "Stub Admin", "role": "admin"},
	})
}

/* ---------------- exams ---------------- */

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := s.store.ListExams(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, exams)
}

func (s *Server) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	var d examDraft
	if !decode(w, r, &d) {
		return
	}
	if d.Name == "" || d.ExamDate == "" {
		respondFail(w, http.StatusUnprocessableEntity, "name and examDate are required")
		return
	}
	exam, err := s.store.CreateExam(r.Context(), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, exam)
}

func (s *Server) handleUpdateExam(w http.ResponseWriter, r *http.Request) {
	var d examDraft
	if !decode(w, r, &d) {
		return
	}
	exam, err := s.store.UpdateExam(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, exam)
}

/* ---------------- classes ---------------- */

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.store.ListClasses(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, classes)
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var d classDraft
	if !decode(w, r, &d) {
		return
	}
	if d.Name == "" || d.MaxClassLevel < d.MinClassLevel {
		respondFail(w, http.StatusUnprocessableEntity, "name required and maxClassLevel must be >= minClassLevel")
		return
	}
	class, err := s.store.CreateClass(r.Context(), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, class)
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	var d classDraft
	if !decode(w, r, &d) {
		return
	}
	class, err := s.store.UpdateClass(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, class)
}

/* ---------------- subjects ---------------- */

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.store.ListSubjects(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, subjects)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var d subjectDraft
	if !decode(w, r, &d) {
		return
	}
	if d.Name == "" {
		respondFail(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	sub, err := s.store.CreateSubject(r.Context(), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, sub)
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var d subjectDraft
	if !decode(w, r, &d) {
		return
	}
	sub, err := s.store.UpdateSubject(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, sub)
}

/* ---------------- topics ---------------- */

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	f := TopicFilter{
		SubjectID: r.URL.Query().Get("subjectId"),
		ClassID:   r.URL.Query().Get("classId"),
	}
	topics, err := s.store.ListTopics(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var d topicDraft
	if !decode(w, r, &d) {
		return
	}
	if d.Name == "" || d.SubjectID == "" || d.ClassID == "" {
		respondFail(w, http.StatusUnprocessableEntity, "name, subjectId and classId are required")
		return
	}
	topic, err := s.store.CreateTopic(r.Context(), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, topic)
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	var d topicDraft
	if !decode(w, r, &d) {
		return
	}
	topic, err := s.store.UpdateTopic(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, topic)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTopic(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
}

/* ---------------- questions ---------------- */

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	f := QuestionFilter{
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		TopicID:    r.URL.Query().Get("topicId"),
		Difficulty: r.URL.Query().Get("difficultyLevel"),
		Search:     r.URL.Query().Get("search"),
	}
	page, err := s.store.ListQuestions(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{
		"questions": page.Questions,
		"pagination": map[string]any{
			"current_page":   page.CurrentPage,
			"total_pages":    page.TotalPages,
			"totalQuestions": page.TotalItems,
			"limit":          page.Limit,
			"has_next":       page.CurrentPage < page.TotalPages,
			"has_prev":       page.CurrentPage > 1,
		},
	})
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var d questionDraft
	if !decode(w, r, &d) {
		return
	}
	if d.TopicID == "" || d.DifficultyLevel == "" {
		respondFail(w, http.StatusUnprocessableEntity, "topicId and difficultyLevel are required")
		return
	}
	q, err := s.store.CreateQuestion(r.Context(), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusCreated, q)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var d questionDraft
	if !decode(w, r, &d) {
		return
	}
	q, err := s.store.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteQuestion(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
}

/* ---------------- users / dashboard / onboarding ---------------- */

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	f := UserFilter{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Search: r.URL.Query().Get("search"),
	}
	page, err := s.store.ListUsers(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, map[string]any{
		"users": page.Users,
		"pagination": map[string]any{
			"current_page": page.CurrentPage,
			"total_pages":  page.TotalPages,
			"totalUsers":   page.TotalItems,
			"limit":        page.Limit,
			"has_next":     page.CurrentPage < page.TotalPages,
			"has_prev":     page.CurrentPage > 1,
		},
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, u)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.DashboardStats(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, stats)
}

func (s *Server) handleOnboardingProfiles(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "all" {
		status = ""
	}
	profiles, err := s.store.ListOnboardingProfiles(r.Context(), status)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, http.StatusOK, profiles)
}
