package stubapi

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Seed loads a small demo dataset when the DB is empty. Safe to call on
// every start.
func (s *Store) Seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exams`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	exam, err := s.CreateExam(ctx, examDraft{
		Name:              "LGS",
		ExamDate:          time.Now().AddDate(0, 10, 0).Format("2006-01-02"),
		TargetClassLevels: []int{8},
		PrepClassLevels:   []int{6, 7, 8},
		Description:       "High school entrance exam",
	})
	if err != nil {
		return err
	}

	class, err := s.CreateClass(ctx, classDraft{Name: "8. Sınıf", MinClassLevel: 8, MaxClassLevel: 8, ExamID: exam.ID})
	if err != nil {
		return err
	}

	math, err := s.CreateSubject(ctx, subjectDraft{Name: "Matematik", OrderIndex: 1, MinClassLevel: 5, MaxClassLevel: 8})
	if err != nil {
		return err
	}
	if _, err := s.CreateSubject(ctx, subjectDraft{Name: "Fen Bilimleri", OrderIndex: 2, MinClassLevel: 5, MaxClassLevel: 8}); err != nil {
		return err
	}

	topic, err := s.CreateTopic(ctx, topicDraft{Name: "Çarpanlar ve Katlar", SubjectID: math.ID, ClassID: class.ID, OrderIndex: 1})
	if err != nil {
		return err
	}

	_, err = s.CreateQuestion(ctx, questionDraft{
		TopicID:         topic.ID,
		DifficultyLevel: "medium",
		QuestionText:    "12 ile 18 sayılarının EBOB'u kaçtır?",
		Keywords:        []string{"ebob"},
		EstimatedTime:   90,
		Answers: []answerDraft{
			{OptionLabel: "A", Text: "3", OrderIndex: 1},
			{OptionLabel: "B", Text: "6", IsCorrect: true, OrderIndex: 2},
			{OptionLabel: "C", Text: "9", OrderIndex: 3},
			{OptionLabel: "D", Text: "36", OrderIndex: 4},
		},
	})
	if err != nil {
		return err
	}

	userID := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,phone_number,name,surname,gender,class_id,exam_id,goal_count,completed_goal_count,program_count,created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		userID, "+905551112233", "Ada", "Yilmaz", "female", class.ID, exam.ID, 4, 2, 1, now()); err != nil {
		return err
	}

	profileID := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO onboarding_profiles (id,user_id,profile_type,primary_goal,target_date,exam_type,motivation,focus_areas_json,daily_minutes,weekly_minutes,preferred_study_times,learning_style,reminder_time,completed,updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,TRUE,$14)`,
		profileID, userID, "student", "Pass LGS", exam.ExamDate, "LGS", "scholarship",
		marshalStrs([]string{"Matematik"}), 120, 700, "evening", "visual", "18:00", now()); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO availability_slots (id,profile_id,day_of_week,start_time,end_time,intensity,priority) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		uuid.NewString(), profileID, 1, "17:00", "19:00", "high", "high")
	return err
}
