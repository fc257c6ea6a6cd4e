//go:build integration

// Full-stack round trip: the admin services talking to the stub backend
// over real HTTP, sqlite-backed. Run with: go test -tags integration ./tests/integration
package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/prepstack/prepadmin/internal/rest"
	"github.com/prepstack/prepadmin/internal/services"
	"github.com/prepstack/prepadmin/internal/session"
	"github.com/prepstack/prepadmin/internal/stubapi"
)

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	store, err := stubapi.Open(context.Background(), stubapi.DriverSQLite, "file:"+filepath.Join(dir, "it.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	files, err := stubapi.NewFSStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	srv := stubapi.NewServer(store, stubapi.NewAuthService("it-secret"), files, "admin@example.com", string(hash))
	ts := httptest.NewServer(stubapi.Router(srv, []string{"*"}))
	t.Cleanup(ts.Close)
	return ts
}

func TestAdminWorkflowAgainstStub(t *testing.T) {
	ts := startStub(t)
	ctx := context.Background()

	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	api := rest.New(rest.Config{BaseURL: ts.URL, Tokens: sessions})

	auth := services.NewAuthService(api, sessions)
	content := services.NewContentService(api)
	questions := services.NewQuestionsService(api)
	users := services.NewUsersService(api)
	dashboard := services.NewDashboardService(api, users)

	// Unauthenticated requests are rejected with the envelope error.
	if _, err := content.Exams(ctx); err == nil {
		t.Fatalf("expected 401 before login")
	}

	if _, err := auth.Login(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !auth.Authenticated() {
		t.Fatalf("session not persisted")
	}

	// Content bundle: all four lists come back from the seed.
	bundle, err := content.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(bundle.Exams) != 1 || len(bundle.Classes) != 1 || len(bundle.Subjects) != 2 || len(bundle.Topics) != 1 {
		t.Fatalf("bundle = %d/%d/%d/%d exams/classes/subjects/topics",
			len(bundle.Exams), len(bundle.Classes), len(bundle.Subjects), len(bundle.Topics))
	}
	topic := bundle.Topics[0]
	if topic.SubjectName == "" || topic.ClassName == "" {
		t.Fatalf("topic missing denormalized names: %+v", topic)
	}

	// Create a child topic, then a question under it.
	child, err := content.CreateTopic(ctx, services.TopicDraft{
		Name:      "Üslü İfadeler",
		SubjectID: topic.SubjectID,
		ClassID:   topic.ClassID,
		ParentID:  topic.ID,
		OrderIndex: 2,
	})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if child.ParentID != topic.ID {
		t.Fatalf("child parent = %q, want %q", child.ParentID, topic.ID)
	}

	created, err := questions.Create(ctx, services.QuestionDraft{
		TopicID:      child.ID,
		Difficulty:   services.DifficultyHard,
		QuestionText: "2^10 kaçtır?",
		Answers: []services.AnswerDraft{
			{OptionLabel: "A", Text: "512", OrderIndex: 1},
			{OptionLabel: "B", Text: "1024", IsCorrect: true, OrderIndex: 2},
		},
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if created.Difficulty != services.DifficultyHard || len(created.Answers) != 2 {
		t.Fatalf("created = %+v", created)
	}

	// Filtered list sees exactly the new question.
	page, err := questions.List(ctx, services.QuestionListParams{Limit: 10}.WithTopic(child.ID))
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(page.Questions) != 1 || page.Questions[0].ID != created.ID {
		t.Fatalf("filtered page = %+v", page)
	}
	if page.Pagination.CurrentPage != 1 || page.Pagination.TotalItems != 1 {
		t.Fatalf("pagination = %+v", page.Pagination)
	}

	// Dashboard reflects the new counts.
	stats, err := dashboard.Overview(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.Summary.TotalQuestions != 2 || stats.Summary.TotalTopics != 2 {
		t.Fatalf("summary = %+v", stats.Summary)
	}
	if len(stats.RecentUsers) != 1 {
		t.Fatalf("recent users = %+v", stats.RecentUsers)
	}

	// Delete and confirm the 404 surfaces as an APIError.
	if err := questions.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	err = questions.Delete(ctx, created.ID)
	apiErr, ok := err.(*rest.APIError)
	if !ok || apiErr.Status != 404 {
		t.Fatalf("second delete err = %v", err)
	}

	// Logout is local only.
	if err := auth.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if auth.Authenticated() {
		t.Fatalf("session survived logout")
	}
}

func TestUserAndOnboardingViewsAgainstStub(t *testing.T) {
	ts := startStub(t)
	ctx := context.Background()

	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	api := rest.New(rest.Config{BaseURL: ts.URL, Tokens: sessions})
	auth := services.NewAuthService(api, sessions)
	users := services.NewUsersService(api)
	onboarding := services.NewOnboardingService(api)

	if _, err := auth.Login(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	page, err := users.List(ctx, services.UserListParams{}.WithSearch("Ada"))
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(page.Users) != 1 {
		t.Fatalf("users = %+v", page.Users)
	}

	detail, err := users.Get(ctx, page.Users[0].ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if detail.Stats.TotalGoals != 4 || detail.Stats.CompletedGoals != 2 {
		t.Fatalf("stats = %+v", detail.Stats)
	}

	profiles, err := onboarding.Profiles(ctx, services.OnboardingCompleted)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(profiles) != 1 || len(profiles[0].Availability) != 1 {
		t.Fatalf("profiles = %+v", profiles)
	}
}
