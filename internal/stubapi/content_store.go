package stubapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func marshalInts(v []int) string {
	if v == nil {
		v = []int{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func unmarshalInts(s string) []int {
	var v []int
	if json.Unmarshal([]byte(s), &v) != nil || v == nil {
		return []int{}
	}
	return v
}

func marshalStrs(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func unmarshalStrs(s string) []string {
	var v []string
	if json.Unmarshal([]byte(s), &v) != nil || v == nil {
		return []string{}
	}
	return v
}

/* ---------------- exams ---------------- */

func (s *Store) ListExams(ctx context.Context) ([]Exam, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,exam_date,target_levels_json,prep_levels_json,description,is_active,created_at FROM exams ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Exam{}
	for rows.Next() {
		var e Exam
		var targets, preps string
		if err := rows.Scan(&e.ID, &e.Name, &e.ExamDate, &targets, &preps, &e.Description, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.TargetClassLevels = unmarshalInts(targets)
		e.PrepClassLevels = unmarshalInts(preps)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateExam(ctx context.Context, d examDraft) (Exam, error) {
	e := Exam{
		ID:                uuid.NewString(),
		Name:              d.Name,
		ExamDate:          d.ExamDate,
		TargetClassLevels: d.TargetClassLevels,
		PrepClassLevels:   d.PrepClassLevels,
		Description:       d.Description,
		IsActive:          true,
		CreatedAt:         now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exams (id,name,exam_date,target_levels_json,prep_levels_json,description,is_active,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Name, e.ExamDate, marshalInts(e.TargetClassLevels), marshalInts(e.PrepClassLevels), e.Description, e.IsActive, e.CreatedAt)
	if err != nil {
		return Exam{}, err
	}
	if e.TargetClassLevels == nil {
		e.TargetClassLevels = []int{}
	}
	if e.PrepClassLevels == nil {
		e.PrepClassLevels = []int{}
	}
	return e, nil
}

func (s *Store) UpdateExam(ctx context.Context, id string, d examDraft) (Exam, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE exams SET name=$1, exam_date=$2, target_levels_json=$3, prep_levels_json=$4, description=$5 WHERE id=$6`,
		d.Name, d.ExamDate, marshalInts(d.TargetClassLevels), marshalInts(d.PrepClassLevels), d.Description, id)
	if err != nil {
		return Exam{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Exam{}, ErrNotFound
	}
	return s.getExam(ctx, id)
}

func (s *Store) getExam(ctx context.Context, id string) (Exam, error) {
	var e Exam
	var targets, preps string
	err := s.db.QueryRowContext(ctx,
		`SELECT id,name,exam_date,target_levels_json,prep_levels_json,description,is_active,created_at FROM exams WHERE id=$1`, id).
		Scan(&e.ID, &e.Name, &e.ExamDate, &targets, &preps, &e.Description, &e.IsActive, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, ErrNotFound
	}
	if err != nil {
		return Exam{}, err
	}
	e.TargetClassLevels = unmarshalInts(targets)
	e.PrepClassLevels = unmarshalInts(preps)
	return e, nil
}

/* ---------------- classes ---------------- */

const classSelect = `SELECT c.id,c.name,c.min_class_level,c.max_class_level,c.exam_id,COALESCE(e.name,''),c.is_active,c.created_at
FROM classes c LEFT JOIN exams e ON e.id = c.exam_id`

func scanClass(sc interface{ Scan(...any) error }) (Class, error) {
	var c Class
	err := sc.Scan(&c.ID, &c.Name, &c.MinClassLevel, &c.MaxClassLevel, &c.ExamID, &c.ExamName, &c.IsActive, &c.CreatedAt)
	return c, err
}

func (s *Store) ListClasses(ctx context.Context) ([]Class, error) {
	rows, err := s.db.QueryContext(ctx, classSelect+` ORDER BY c.min_class_level, c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateClass(ctx context.Context, d classDraft) (Class, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classes (id,name,min_class_level,max_class_level,exam_id,is_active,created_at) VALUES ($1,$2,$3,$4,$5,TRUE,$6)`,
		id, d.Name, d.MinClassLevel, d.MaxClassLevel, d.ExamID, now())
	if err != nil {
		return Class{}, err
	}
	return s.getClass(ctx, id)
}

func (s *Store) UpdateClass(ctx context.Context, id string, d classDraft) (Class, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE classes SET name=$1, min_class_level=$2, max_class_level=$3, exam_id=$4 WHERE id=$5`,
		d.Name, d.MinClassLevel, d.MaxClassLevel, d.ExamID, id)
	if err != nil {
		return Class{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Class{}, ErrNotFound
	}
	return s.getClass(ctx, id)
}

func (s *Store) getClass(ctx context.Context, id string) (Class, error) {
	c, err := scanClass(s.db.QueryRowContext(ctx, classSelect+` WHERE c.id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Class{}, ErrNotFound
	}
	return c, err
}

/* ---------------- subjects ---------------- */

func (s *Store) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,order_index,min_class_level,max_class_level,is_active,created_at FROM subjects ORDER BY order_index, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Subject{}
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.OrderIndex, &sub.MinClassLevel, &sub.MaxClassLevel, &sub.IsActive, &sub.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *Store) CreateSubject(ctx context.Context, d subjectDraft) (Subject, error) {
	sub := Subject{
		ID:            uuid.NewString(),
		Name:          d.Name,
		OrderIndex:    d.OrderIndex,
		MinClassLevel: d.MinClassLevel,
		MaxClassLevel: d.MaxClassLevel,
		IsActive:      true,
		CreatedAt:     now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (id,name,order_index,min_class_level,max_class_level,is_active,created_at) VALUES ($1,$2,$3,$4,$5,TRUE,$6)`,
		sub.ID, sub.Name, sub.OrderIndex, sub.MinClassLevel, sub.MaxClassLevel, sub.CreatedAt)
	if err != nil {
		return Subject{}, err
	}
	return sub, nil
}

func (s *Store) UpdateSubject(ctx context.Context, id string, d subjectDraft) (Subject, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET name=$1, order_index=$2, min_class_level=$3, max_class_level=$4 WHERE id=$5`,
		d.Name, d.OrderIndex, d.MinClassLevel, d.MaxClassLevel, id)
	if err != nil {
		return Subject{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Subject{}, ErrNotFound
	}
	var sub Subject
	err = s.db.QueryRowContext(ctx,
		`SELECT id,name,order_index,min_class_level,max_class_level,is_active,created_at FROM subjects WHERE id=$1`, id).
		Scan(&sub.ID, &sub.Name, &sub.OrderIndex, &sub.MinClassLevel, &sub.MaxClassLevel, &sub.IsActive, &sub.CreatedAt)
	return sub, err
}

/* ---------------- topics ---------------- */

const topicSelect = `SELECT t.id,t.name,t.subject_id,COALESCE(s.name,''),t.class_id,COALESCE(c.name,''),t.parent_id,COALESCE(p.name,''),t.order_index,t.is_active,t.created_at
FROM topics t
LEFT JOIN subjects s ON s.id = t.subject_id
LEFT JOIN classes c ON c.id = t.class_id
LEFT JOIN topics p ON p.id = t.parent_id`

func scanTopic(sc interface{ Scan(...any) error }) (Topic, error) {
	var t Topic
	err := sc.Scan(&t.ID, &t.Name, &t.SubjectID, &t.SubjectName, &t.ClassID, &t.ClassName, &t.ParentID, &t.ParentName, &t.OrderIndex, &t.IsActive, &t.CreatedAt)
	return t, err
}

// TopicFilter narrows ListTopics; zero fields match everything.
type TopicFilter struct {
	SubjectID string
	ClassID   string
}

func (s *Store) ListTopics(ctx context.Context, f TopicFilter) ([]Topic, error) {
	q := topicSelect + ` WHERE 1=1`
	args := []any{}
	if f.SubjectID != "" {
		args = append(args, f.SubjectID)
		q += ` AND t.subject_id=` + placeholder(len(args))
	}
	if f.ClassID != "" {
		args = append(args, f.ClassID)
		q += ` AND t.class_id=` + placeholder(len(args))
	}
	q += ` ORDER BY t.order_index, t.name`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CreateTopic(ctx context.Context, d topicDraft) (Topic, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO topics (id,name,subject_id,class_id,parent_id,order_index,is_active,created_at) VALUES ($1,$2,$3,$4,$5,$6,TRUE,$7)`,
		id, d.Name, d.SubjectID, d.ClassID, d.ParentID, d.OrderIndex, now())
	if err != nil {
		return Topic{}, err
	}
	return s.getTopic(ctx, id)
}

func (s *Store) UpdateTopic(ctx context.Context, id string, d topicDraft) (Topic, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE topics SET name=$1, subject_id=$2, class_id=$3, parent_id=$4, order_index=$5 WHERE id=$6`,
		d.Name, d.SubjectID, d.ClassID, d.ParentID, d.OrderIndex, id)
	if err != nil {
		return Topic{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Topic{}, ErrNotFound
	}
	return s.getTopic(ctx, id)
}

func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	// Detach children rather than cascading: matches the permissive parent
	// handling on the live service.
	_, err = s.db.ExecContext(ctx, `UPDATE topics SET parent_id='' WHERE parent_id=$1`, id)
	return err
}

func (s *Store) getTopic(ctx context.Context, id string) (Topic, error) {
	t, err := scanTopic(s.db.QueryRowContext(ctx, topicSelect+` WHERE t.id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Topic{}, ErrNotFound
	}
	return t, err
}
