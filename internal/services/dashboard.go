package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/prepstack/prepadmin/internal/rest"
)

// DashboardService aggregates the admin landing screen. The summary counters
// and per-subject statistics come from /admin/dashboard; the recent-users
// widget is an independent fetch against the users list, so one failing leg
// leaves the other widgets populated.
type DashboardService struct {
	api   *rest.Client
	users *UsersService
}

func NewDashboardService(api *rest.Client, users *UsersService) *DashboardService {
	return &DashboardService{api: api, users: users}
}

type dashboardPayload struct {
	Summary struct {
		TotalUsers        *flexInt `json:"total_users"`
		TotalUsersAlt     *flexInt `json:"totalUsers"`
		TotalQuestions    *flexInt `json:"total_questions"`
		TotalQuestionsAlt *flexInt `json:"totalQuestions"`
		TotalTopics       *flexInt `json:"total_topics"`
		TotalTopicsAlt    *flexInt `json:"totalTopics"`
		ActivePrograms    *flexInt `json:"active_programs"`
		ActiveProgramsAlt *flexInt `json:"activePrograms"`
	} `json:"summary"`
	SubjectStats    []subjectStatPayload `json:"subject_stats"`
	SubjectStatsAlt []subjectStatPayload `json:"subjectStats"`
}

type subjectStatPayload struct {
	SubjectName      string   `json:"subject_name"`
	SubjectNameAlt   string   `json:"subjectName"`
	TopicCount       *flexInt `json:"topic_count"`
	TopicCountAlt    *flexInt `json:"topicCount"`
	QuestionCount    *flexInt `json:"question_count"`
	QuestionCountAlt *flexInt `json:"questionCount"`
}

func (p dashboardPayload) normalize() (DashboardSummary, []SubjectStat) {
	sum := DashboardSummary{
		TotalUsers:     pickInt(p.Summary.TotalUsers, p.Summary.TotalUsersAlt),
		TotalQuestions: pickInt(p.Summary.TotalQuestions, p.Summary.TotalQuestionsAlt),
		TotalTopics:    pickInt(p.Summary.TotalTopics, p.Summary.TotalTopicsAlt),
		ActivePrograms: pickInt(p.Summary.ActivePrograms, p.Summary.ActiveProgramsAlt),
	}
	rows := p.SubjectStats
	if rows == nil {
		rows = p.SubjectStatsAlt
	}
	stats := make([]SubjectStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, SubjectStat{
			SubjectName:   pickStr(r.SubjectName, r.SubjectNameAlt),
			TopicCount:    pickInt(r.TopicCount, r.TopicCountAlt),
			QuestionCount: pickInt(r.QuestionCount, r.QuestionCountAlt),
		})
	}
	return sum, stats
}

// recentUserCount is how many users the recent-signups widget shows.
const recentUserCount = 5

// Overview issues the two dashboard fetches concurrently. A failed leg
// resolves to its zero value; an error is returned only when both failed.
func (s *DashboardService) Overview(ctx context.Context) (DashboardStats, error) {
	var (
		wg      sync.WaitGroup
		stats   DashboardStats
		summErr error
		userErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		data, err := s.api.Get(ctx, "/admin/dashboard", nil)
		if err != nil {
			summErr = err
			return
		}
		var p dashboardPayload
		if err := json.Unmarshal(data, &p); err != nil {
			summErr = err
			return
		}
		stats.Summary, stats.SubjectStats = p.normalize()
	}()
	go func() {
		defer wg.Done()
		page, err := s.users.List(ctx, UserListParams{Page: 1, Limit: recentUserCount})
		if err != nil {
			userErr = err
			return
		}
		stats.RecentUsers = page.Users
	}()
	wg.Wait()

	if summErr != nil && userErr != nil {
		return DashboardStats{}, errors.Join(summErr, userErr)
	}
	if stats.SubjectStats == nil {
		stats.SubjectStats = []SubjectStat{}
	}
	if stats.RecentUsers == nil {
		stats.RecentUsers = []User{}
	}
	return stats, nil
}
