package stubapi

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// UserFilter narrows ListUsers. Page is 1-indexed.
type UserFilter struct {
	Page   int
	Limit  int
	Search string
}

type UserPage struct {
	Users       []User
	CurrentPage int
	TotalPages  int
	TotalItems  int
	Limit       int
}

const userSelect = `SELECT u.id,u.phone_number,u.name,u.surname,u.gender,u.class_id,COALESCE(c.name,''),u.exam_id,COALESCE(e.name,''),u.created_at
FROM users u
LEFT JOIN classes c ON c.id = u.class_id
LEFT JOIN exams e ON e.id = u.exam_id`

func scanUser(sc interface{ Scan(...any) error }) (User, error) {
	var u User
	err := sc.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.Surname, &u.Gender, &u.ClassID, &u.ClassName, &u.ExamID, &u.ExamName, &u.CreatedAt)
	return u, err
}

func (s *Store) ListUsers(ctx context.Context, f UserFilter) (UserPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	where := ` WHERE 1=1`
	args := []any{}
	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		p := placeholder(len(args))
		where += ` AND (LOWER(u.name) LIKE ` + p + ` OR LOWER(u.surname) LIKE ` + p + ` OR u.phone_number LIKE ` + p + `)`
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return UserPage{}, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := s.db.QueryContext(ctx, userSelect+where+
		` ORDER BY u.created_at DESC LIMIT `+placeholder(len(args)-1)+` OFFSET `+placeholder(len(args)), args...)
	if err != nil {
		return UserPage{}, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return UserPage{}, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return UserPage{}, err
	}

	pages := (total + f.Limit - 1) / f.Limit
	if pages < 1 {
		pages = 1
	}
	return UserPage{Users: users, CurrentPage: f.Page, TotalPages: pages, TotalItems: total, Limit: f.Limit}, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (UserDetail, error) {
	var d UserDetail
	err := s.db.QueryRowContext(ctx, `SELECT u.id,u.phone_number,u.name,u.surname,u.gender,u.class_id,COALESCE(c.name,''),u.exam_id,COALESCE(e.name,''),COALESCE(e.exam_date,''),u.goal_count,u.completed_goal_count,u.program_count,u.created_at
FROM users u
LEFT JOIN classes c ON c.id = u.class_id
LEFT JOIN exams e ON e.id = u.exam_id
WHERE u.id=$1`, id).
		Scan(&d.ID, &d.PhoneNumber, &d.Name, &d.Surname, &d.Gender, &d.ClassID, &d.ClassName, &d.ExamID, &d.ExamName, &d.ExamDate,
			&d.Stats.TotalGoals, &d.Stats.CompletedGoals, &d.Stats.TotalPrograms, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UserDetail{}, ErrNotFound
	}
	return d, err
}

/* ---------------- dashboard ---------------- */

type DashboardStats struct {
	Summary      DashboardSummary `json:"summary"`
	SubjectStats []SubjectStat    `json:"subject_stats"`
}

type DashboardSummary struct {
	TotalUsers     int `json:"total_users"`
	TotalQuestions int `json:"total_questions"`
	TotalTopics    int `json:"total_topics"`
	ActivePrograms int `json:"active_programs"`
}

type SubjectStat struct {
	SubjectName   string `json:"subject_name"`
	QuestionCount int    `json:"question_count"`
	TopicCount    int    `json:"topic_count"`
}

func (s *Store) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM users`, &out.Summary.TotalUsers},
		{`SELECT COUNT(*) FROM questions`, &out.Summary.TotalQuestions},
		{`SELECT COUNT(*) FROM topics`, &out.Summary.TotalTopics},
		{`SELECT COALESCE(SUM(program_count),0) FROM users`, &out.Summary.ActivePrograms},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return DashboardStats{}, err
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT s.name,
  (SELECT COUNT(*) FROM questions q JOIN topics t ON t.id = q.topic_id WHERE t.subject_id = s.id),
  (SELECT COUNT(*) FROM topics t WHERE t.subject_id = s.id)
FROM subjects s ORDER BY s.order_index, s.name`)
	if err != nil {
		return DashboardStats{}, err
	}
	defer rows.Close()
	out.SubjectStats = []SubjectStat{}
	for rows.Next() {
		var st SubjectStat
		if err := rows.Scan(&st.SubjectName, &st.QuestionCount, &st.TopicCount); err != nil {
			return DashboardStats{}, err
		}
		out.SubjectStats = append(out.SubjectStats, st)
	}
	return out, rows.Err()
}

/* ---------------- onboarding ---------------- */

// ListOnboardingProfiles joins users with their onboarding documents.
// status is "", "completed" or "pending"; empty means everyone.
func (s *Store) ListOnboardingProfiles(ctx context.Context, status string) ([]OnboardingProfile, error) {
	q := `SELECT u.id,u.phone_number,u.name,u.surname,u.created_at,
  COALESCE(p.id,''),COALESCE(p.profile_type,''),COALESCE(p.primary_goal,''),COALESCE(p.target_date,''),
  COALESCE(p.exam_type,''),COALESCE(p.motivation,''),COALESCE(p.focus_areas_json,'[]'),
  COALESCE(p.daily_minutes,0),COALESCE(p.weekly_minutes,0),COALESCE(p.preferred_study_times,''),
  COALESCE(p.learning_style,''),COALESCE(p.reminder_time,''),COALESCE(p.completed,FALSE),COALESCE(p.updated_at,'')
FROM users u
LEFT JOIN onboarding_profiles p ON p.user_id = u.id`
	switch status {
	case "completed":
		q += ` WHERE p.completed = TRUE`
	case "pending":
		q += ` WHERE p.id IS NULL OR p.completed = FALSE`
	}
	q += ` ORDER BY u.created_at DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OnboardingProfile{}
	for rows.Next() {
		var p OnboardingProfile
		var profileID, focus string
		var completed bool
		if err := rows.Scan(&p.ID, &p.PhoneNumber, &p.Name, &p.Surname, &p.CreatedAt,
			&profileID, &p.ProfileType, &p.PrimaryGoal, &p.TargetDate,
			&p.ExamType, &p.Motivation, &focus,
			&p.DailyAvailableMinutes, &p.WeeklyAvailableMinutes, &p.PreferredStudyTimes,
			&p.LearningStyle, &p.ReminderTime, &completed, &p.ProfileUpdatedAt); err != nil {
			return nil, err
		}
		p.StudyFocusAreas = unmarshalStrs(focus)
		p.Availability = []AvailabilitySlot{}
		if profileID != "" {
			slots, err := s.listSlots(ctx, profileID)
			if err != nil {
				return nil, err
			}
			p.Availability = slots
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) listSlots(ctx context.Context, profileID string) ([]AvailabilitySlot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,day_of_week,start_time,end_time,intensity,priority FROM availability_slots WHERE profile_id=$1 ORDER BY day_of_week, start_time`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AvailabilitySlot{}
	for rows.Next() {
		var a AvailabilitySlot
		if err := rows.Scan(&a.ID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.Intensity, &a.Priority); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
