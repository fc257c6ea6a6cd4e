package stubapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router assembles the full stub surface: public login, static uploads,
// and the JWT-guarded /admin routes.
func Router(s *Server, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/admin/login", s.handleLogin)
	r.Mount("/uploads", s.files.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(JWTMiddleware(s.auth))

		pr.Get("/admin/dashboard", s.handleDashboard)

		pr.Get("/admin/exams", s.handleListExams)
		pr.Post("/admin/exams", s.handleCreateExam)
		pr.Put("/admin/exams/{id}", s.handleUpdateExam)

		pr.Get("/admin/classes", s.handleListClasses)
		pr.Post("/admin/classes", s.handleCreateClass)
		pr.Put("/admin/classes/{id}", s.handleUpdateClass)

		pr.Get("/admin/subjects", s.handleListSubjects)
		pr.Post("/admin/subjects", s.handleCreateSubject)
		pr.Put("/admin/subjects/{id}", s.handleUpdateSubject)

		pr.Get("/admin/topics", s.handleListTopics)
		pr.Post("/admin/topics", s.handleCreateTopic)
		pr.Put("/admin/topics/{id}", s.handleUpdateTopic)
		pr.Delete("/admin/topics/{id}", s.handleDeleteTopic)

		pr.Get("/admin/questions", s.handleListQuestions)
		pr.Post("/admin/questions", s.handleCreateQuestion)
		pr.Put("/admin/questions/{id}", s.handleUpdateQuestion)
		pr.Delete("/admin/questions/{id}", s.handleDeleteQuestion)

		pr.Get("/admin/users", s.handleListUsers)
		pr.Get("/admin/users/{id}", s.handleGetUser)

		pr.Get("/admin/onboarding/profiles", s.handleOnboardingProfiles)

		pr.Post("/upload/question-files", UploadQuestionFiles(s.files))
	})

	return r
}
