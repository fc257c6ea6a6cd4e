package services

import (
	"context"
	"net/http"
	"testing"
)

func dashboardMux(usersFail, summaryFail bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if summaryFail {
			writeFail(w, http.StatusInternalServerError, "dashboard query failed")
			return
		}
		writeOK(w, map[string]any{
			"summary": map[string]any{
				"total_users":     120,
				"total_questions": 900,
				"total_topics":    64,
				"active_programs": 33,
			},
			"subject_stats": []map[string]any{
				{"subject_name": "Matematik", "topic_count": 20, "question_count": 400},
				{"subject_name": "Fen", "topic_count": 14, "question_count": 250},
			},
		})
	})
	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if usersFail {
			writeFail(w, http.StatusInternalServerError, "users query failed")
			return
		}
		writeOK(w, map[string]any{
			"users": []map[string]any{
				{"id": 1, "name": "Ada", "surname": "Y", "phone_number": "+905551112233", "created_at": "2024-06-01"},
			},
			"pagination": map[string]any{"currentPage": 1, "totalPages": 1, "totalUsers": 1, "limit": 5},
		})
	})
	return mux
}

func newDashboard(t *testing.T, mux *http.ServeMux) *DashboardService {
	api := newTestAPI(t, mux)
	return NewDashboardService(api, NewUsersService(api))
}

func TestOverviewHappyPath(t *testing.T) {
	svc := newDashboard(t, dashboardMux(false, false))
	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if stats.Summary.TotalUsers != 120 || stats.Summary.TotalQuestions != 900 {
		t.Fatalf("summary = %+v", stats.Summary)
	}
	if len(stats.SubjectStats) != 2 || stats.SubjectStats[0].SubjectName != "Matematik" {
		t.Fatalf("subject stats = %+v", stats.SubjectStats)
	}
	if len(stats.RecentUsers) != 1 || stats.RecentUsers[0].PhoneNumber != "+905551112233" {
		t.Fatalf("recent users = %+v", stats.RecentUsers)
	}
}

func TestOverviewSurvivesFailedRecentUsers(t *testing.T) {
	svc := newDashboard(t, dashboardMux(true, false))
	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("a failed users leg must not fail the dashboard: %v", err)
	}
	if stats.Summary.TotalUsers != 120 {
		t.Fatalf("summary lost: %+v", stats.Summary)
	}
	if len(stats.SubjectStats) != 2 {
		t.Fatalf("subject stats lost: %+v", stats.SubjectStats)
	}
	if len(stats.RecentUsers) != 0 {
		t.Fatalf("failed widget must be empty, got %+v", stats.RecentUsers)
	}
}

func TestOverviewFailsOnlyWhenBothLegsFail(t *testing.T) {
	svc := newDashboard(t, dashboardMux(true, true))
	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatalf("expected error when both legs fail")
	}

	svc = newDashboard(t, dashboardMux(false, true))
	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("a failed summary leg must not fail the dashboard: %v", err)
	}
	if len(stats.RecentUsers) != 1 {
		t.Fatalf("recent users lost: %+v", stats.RecentUsers)
	}
	if stats.Summary != (DashboardSummary{}) {
		t.Fatalf("summary should be zero when its leg failed: %+v", stats.Summary)
	}
}
