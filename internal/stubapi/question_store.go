package stubapi

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// QuestionFilter narrows ListQuestions. Page is 1-indexed.
type QuestionFilter struct {
	Page       int
	Limit      int
	TopicID    string
	Difficulty string
	Search     string
}

// QuestionPage is a page of questions plus the pagination header the
// admin client expects.
type QuestionPage struct {
	Questions   []Question
	CurrentPage int
	TotalPages  int
	TotalItems  int
	Limit       int
}

func (s *Store) ListQuestions(ctx context.Context, f QuestionFilter) (QuestionPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	where := ` WHERE 1=1`
	args := []any{}
	if f.TopicID != "" {
		args = append(args, f.TopicID)
		where += ` AND q.topic_id=` + placeholder(len(args))
	}
	if f.Difficulty != "" {
		args = append(args, f.Difficulty)
		where += ` AND q.difficulty_level=` + placeholder(len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		p := placeholder(len(args))
		where += ` AND (LOWER(q.question_text) LIKE ` + p + ` OR LOWER(q.keywords_json) LIKE ` + p + `)`
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions q`+where, args...).Scan(&total); err != nil {
		return QuestionPage{}, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := s.db.QueryContext(ctx, questionSelect+where+
		` ORDER BY q.created_at DESC LIMIT `+placeholder(len(args)-1)+` OFFSET `+placeholder(len(args)), args...)
	if err != nil {
		return QuestionPage{}, err
	}
	defer rows.Close()

	qs := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return QuestionPage{}, err
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return QuestionPage{}, err
	}
	for i := range qs {
		if err := s.loadAnswers(ctx, &qs[i]); err != nil {
			return QuestionPage{}, err
		}
	}

	pages := (total + f.Limit - 1) / f.Limit
	if pages < 1 {
		pages = 1
	}
	return QuestionPage{
		Questions:   qs,
		CurrentPage: f.Page,
		TotalPages:  pages,
		TotalItems:  total,
		Limit:       f.Limit,
	}, nil
}

const questionSelect = `SELECT q.id,q.topic_id,COALESCE(t.name,''),COALESCE(s.name,''),COALESCE(c.name,''),
q.difficulty_level,q.question_text,q.question_image_url,q.question_pdf_url,
q.solution_text,q.solution_image_url,q.solution_pdf_url,
q.has_multiple_correct,q.explanation,q.keywords_json,q.estimated_time,q.is_active,q.created_at
FROM questions q
LEFT JOIN topics t ON t.id = q.topic_id
LEFT JOIN subjects s ON s.id = t.subject_id
LEFT JOIN classes c ON c.id = t.class_id`

func scanQuestion(sc interface{ Scan(...any) error }) (Question, error) {
	var q Question
	var keywords string
	err := sc.Scan(&q.ID, &q.TopicID, &q.TopicName, &q.SubjectName, &q.ClassName,
		&q.DifficultyLevel, &q.QuestionText, &q.QuestionImageURL, &q.QuestionPDFURL,
		&q.SolutionText, &q.SolutionImageURL, &q.SolutionPDFURL,
		&q.HasMultipleCorrect, &q.Explanation, &keywords, &q.EstimatedTime, &q.IsActive, &q.CreatedAt)
	if err != nil {
		return Question{}, err
	}
	q.Keywords = unmarshalStrs(keywords)
	q.Answers = []Answer{}
	return q, nil
}

func (s *Store) loadAnswers(ctx context.Context, q *Question) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,question_id,option_label,answer_text,answer_image_url,is_correct,order_index FROM answers WHERE question_id=$1 ORDER BY order_index`, q.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.OptionLabel, &a.Text, &a.ImageURL, &a.IsCorrect, &a.OrderIndex); err != nil {
			return err
		}
		q.Answers = append(q.Answers, a)
	}
	return rows.Err()
}

func (s *Store) CreateQuestion(ctx context.Context, d questionDraft) (Question, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (id,topic_id,difficulty_level,question_text,question_image_url,question_pdf_url,solution_text,solution_image_url,solution_pdf_url,has_multiple_correct,explanation,keywords_json,estimated_time,is_active,created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,TRUE,$14)`,
		id, d.TopicID, d.DifficultyLevel, d.QuestionText, d.QuestionImageURL, d.QuestionPDFURL,
		d.SolutionText, d.SolutionImageURL, d.SolutionPDFURL, d.HasMultipleCorrect,
		d.Explanation, marshalStrs(d.Keywords), d.EstimatedTime, now())
	if err != nil {
		return Question{}, err
	}
	if err := s.insertAnswers(ctx, id, d.Answers); err != nil {
		return Question{}, err
	}
	return s.getQuestion(ctx, id)
}

func (s *Store) UpdateQuestion(ctx context.Context, id string, d questionDraft) (Question, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET topic_id=$1, difficulty_level=$2, question_text=$3, question_image_url=$4, question_pdf_url=$5, solution_text=$6, solution_image_url=$7, solution_pdf_url=$8, has_multiple_correct=$9, explanation=$10, keywords_json=$11, estimated_time=$12 WHERE id=$13`,
		d.TopicID, d.DifficultyLevel, d.QuestionText, d.QuestionImageURL, d.QuestionPDFURL,
		d.SolutionText, d.SolutionImageURL, d.SolutionPDFURL, d.HasMultipleCorrect,
		d.Explanation, marshalStrs(d.Keywords), d.EstimatedTime, id)
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrNotFound
	}
	// Answers are replaced wholesale on update.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM answers WHERE question_id=$1`, id); err != nil {
		return Question{}, err
	}
	if err := s.insertAnswers(ctx, id, d.Answers); err != nil {
		return Question{}, err
	}
	return s.getQuestion(ctx, id)
}

func (s *Store) insertAnswers(ctx context.Context, questionID string, drafts []answerDraft) error {
	for _, a := range drafts {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO answers (id,question_id,option_label,answer_text,answer_image_url,is_correct,order_index) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			uuid.NewString(), questionID, a.OptionLabel, a.Text, a.ImageURL, a.IsCorrect, a.OrderIndex)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM answers WHERE question_id=$1`, id)
	return err
}

func (s *Store) getQuestion(ctx context.Context, id string) (Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, questionSelect+` WHERE q.id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	if err != nil {
		return Question{}, err
	}
	if err := s.loadAnswers(ctx, &q); err != nil {
		return Question{}, err
	}
	return q, nil
}
