package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"

	"github.com/prepstack/prepadmin/internal/rest"
)

// ContentService covers the four content resources managed together on the
// content screen: exams, classes, subjects and topics.
type ContentService struct {
	api *rest.Client
}

func NewContentService(api *rest.Client) *ContentService {
	return &ContentService{api: api}
}

/* ---------------- wire payloads ---------------- */

type examPayload struct {
	ID                   flexID    `json:"id"`
	Name                 string    `json:"name"`
	ExamDate             string    `json:"exam_date"`
	ExamDateAlt          string    `json:"examDate"`
	TargetClassLevels    []flexInt `json:"target_class_levels"`
	TargetClassLevelsAlt []flexInt `json:"targetClassLevels"`
	PrepClassLevels      []flexInt `json:"prep_class_levels"`
	PrepClassLevelsAlt   []flexInt `json:"prepClassLevels"`
	Description          string    `json:"description"`
	IsActive             *flexBool `json:"is_active"`
	IsActiveAlt          *flexBool `json:"isActive"`
	CreatedAt            string    `json:"created_at"`
	CreatedAtAlt         string    `json:"createdAt"`
}

func (p examPayload) normalize() Exam {
	return Exam{
		ID:                string(p.ID),
		Name:              p.Name,
		ExamDate:          pickStr(p.ExamDate, p.ExamDateAlt),
		TargetClassLevels: pickInts(p.TargetClassLevels, p.TargetClassLevelsAlt),
		PrepClassLevels:   pickInts(p.PrepClassLevels, p.PrepClassLevelsAlt),
		Description:       p.Description,
		IsActive:          pickBool(p.IsActive, p.IsActiveAlt),
		CreatedAt:         pickStr(p.CreatedAt, p.CreatedAtAlt),
	}
}

type classPayload struct {
	ID               flexID    `json:"id"`
	Name             string    `json:"name"`
	MinClassLevel    *flexInt  `json:"min_class_level"`
	MinClassLevelAlt *flexInt  `json:"minClassLevel"`
	MaxClassLevel    *flexInt  `json:"max_class_level"`
	MaxClassLevelAlt *flexInt  `json:"maxClassLevel"`
	ExamID           flexID    `json:"exam_id"`
	ExamIDAlt        flexID    `json:"examId"`
	ExamName         string    `json:"exam_name"`
	ExamNameAlt      string    `json:"examName"`
	IsActive         *flexBool `json:"is_active"`
	IsActiveAlt      *flexBool `json:"isActive"`
	CreatedAt        string    `json:"created_at"`
	CreatedAtAlt     string    `json:"createdAt"`
}

func (p classPayload) normalize() Class {
	return Class{
		ID:            string(p.ID),
		Name:          p.Name,
		MinClassLevel: pickInt(p.MinClassLevel, p.MinClassLevelAlt),
		MaxClassLevel: pickInt(p.MaxClassLevel, p.MaxClassLevelAlt),
		ExamID:        pickID(p.ExamID, p.ExamIDAlt),
		ExamName:      pickStr(p.ExamName, p.ExamNameAlt),
		IsActive:      pickBool(p.IsActive, p.IsActiveAlt),
		CreatedAt:     pickStr(p.CreatedAt, p.CreatedAtAlt),
	}
}

type subjectPayload struct {
	ID               flexID    `json:"id"`
	Name             string    `json:"name"`
	OrderIndex       *flexInt  `json:"order_index"`
	OrderIndexAlt    *flexInt  `json:"orderIndex"`
	MinClassLevel    *flexInt  `json:"min_class_level"`
	MinClassLevelAlt *flexInt  `json:"minClassLevel"`
	MaxClassLevel    *flexInt  `json:"max_class_level"`
	MaxClassLevelAlt *flexInt  `json:"maxClassLevel"`
	IsActive         *flexBool `json:"is_active"`
	IsActiveAlt      *flexBool `json:"isActive"`
	CreatedAt        string    `json:"created_at"`
	CreatedAtAlt     string    `json:"createdAt"`
}

func (p subjectPayload) normalize() Subject {
	return Subject{
		ID:            string(p.ID),
		Name:          p.Name,
		OrderIndex:    pickInt(p.OrderIndex, p.OrderIndexAlt),
		MinClassLevel: pickInt(p.MinClassLevel, p.MinClassLevelAlt),
		MaxClassLevel: pickInt(p.MaxClassLevel, p.MaxClassLevelAlt),
		IsActive:      pickBool(p.IsActive, p.IsActiveAlt),
		CreatedAt:     pickStr(p.CreatedAt, p.CreatedAtAlt),
	}
}

type topicPayload struct {
	ID             flexID    `json:"id"`
	Name           string    `json:"name"`
	SubjectID      flexID    `json:"subject_id"`
	SubjectIDAlt   flexID    `json:"subjectId"`
	SubjectName    string    `json:"subject_name"`
	SubjectNameAlt string    `json:"subjectName"`
	ClassID        flexID    `json:"class_id"`
	ClassIDAlt     flexID    `json:"classId"`
	ClassName      string    `json:"class_name"`
	ClassNameAlt   string    `json:"className"`
	ParentID       flexID    `json:"parent_id"`
	ParentIDAlt    flexID    `json:"parentId"`
	ParentName     string    `json:"parent_name"`
	ParentNameAlt  string    `json:"parentName"`
	OrderIndex     *flexInt  `json:"order_index"`
	OrderIndexAlt  *flexInt  `json:"orderIndex"`
	IsActive       *flexBool `json:"is_active"`
	IsActiveAlt    *flexBool `json:"isActive"`
	CreatedAt      string    `json:"created_at"`
	CreatedAtAlt   string    `json:"createdAt"`
}

func (p topicPayload) normalize() Topic {
	return Topic{
		ID:          string(p.ID),
		Name:        p.Name,
		SubjectID:   pickID(p.SubjectID, p.SubjectIDAlt),
		SubjectName: pickStr(p.SubjectName, p.SubjectNameAlt),
		ClassID:     pickID(p.ClassID, p.ClassIDAlt),
		ClassName:   pickStr(p.ClassName, p.ClassNameAlt),
		ParentID:    pickID(p.ParentID, p.ParentIDAlt),
		ParentName:  pickStr(p.ParentName, p.ParentNameAlt),
		OrderIndex:  pickInt(p.OrderIndex, p.OrderIndexAlt),
		IsActive:    pickBool(p.IsActive, p.IsActiveAlt),
		CreatedAt:   pickStr(p.CreatedAt, p.CreatedAtAlt),
	}
}

/* ---------------- drafts ---------------- */

// Drafts carry the user-editable fields of a create/edit form. They serialize
// to the camelCase names the mutation endpoints expect; optional references
// are omitted rather than sent as "".

type ExamDraft struct {
	Name              string `validate:"required"`
	ExamDate          string `validate:"required"`
	TargetClassLevels []int
	PrepClassLevels   []int
	Description       string
}

func (d ExamDraft) payload() map[string]any {
	p := map[string]any{
		"name":              d.Name,
		"examDate":          d.ExamDate,
		"targetClassLevels": d.TargetClassLevels,
		"prepClassLevels":   d.PrepClassLevels,
	}
	if d.Description != "" {
		p["description"] = d.Description
	}
	return p
}

type ClassDraft struct {
	Name          string `validate:"required"`
	MinClassLevel int    `validate:"min=1"`
	MaxClassLevel int    `validate:"gtefield=MinClassLevel"`
	ExamID        string
}

func (d ClassDraft) payload() map[string]any {
	p := map[string]any{
		"name":          d.Name,
		"minClassLevel": d.MinClassLevel,
		"maxClassLevel": d.MaxClassLevel,
	}
	if d.ExamID != "" {
		p["examId"] = d.ExamID
	}
	return p
}

type SubjectDraft struct {
	Name          string `validate:"required"`
	OrderIndex    int
	MinClassLevel int
	MaxClassLevel int `validate:"gtefield=MinClassLevel"`
}

func (d SubjectDraft) payload() map[string]any {
	p := map[string]any{
		"name":       d.Name,
		"orderIndex": d.OrderIndex,
	}
	if d.MinClassLevel != 0 {
		p["minClassLevel"] = d.MinClassLevel
	}
	if d.MaxClassLevel != 0 {
		p["maxClassLevel"] = d.MaxClassLevel
	}
	return p
}

type TopicDraft struct {
	Name       string `validate:"required"`
	SubjectID  string `validate:"required"`
	ClassID    string `validate:"required"`
	ParentID   string
	OrderIndex int
}

func (d TopicDraft) payload() map[string]any {
	p := map[string]any{
		"name":       d.Name,
		"subjectId":  d.SubjectID,
		"classId":    d.ClassID,
		"orderIndex": d.OrderIndex,
	}
	// An empty parent means "no parent": the field is omitted entirely, never
	// sent as "".
	if d.ParentID != "" {
		p["parentId"] = d.ParentID
	}
	return p
}

/* ---------------- list operations ---------------- */

func (s *ContentService) Exams(ctx context.Context) ([]Exam, error) {
	data, err := s.api.Get(ctx, "/admin/exams", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := splitList(data, "exams", "items")
	if err != nil {
		return nil, err
	}
	var rows []examPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, err
	}
	out := make([]Exam, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.normalize())
	}
	return out, nil
}

func (s *ContentService) Classes(ctx context.Context) ([]Class, error) {
	data, err := s.api.Get(ctx, "/admin/classes", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := splitList(data, "classes", "items")
	if err != nil {
		return nil, err
	}
	var rows []classPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, err
	}
	out := make([]Class, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.normalize())
	}
	return out, nil
}

func (s *ContentService) Subjects(ctx context.Context) ([]Subject, error) {
	data, err := s.api.Get(ctx, "/admin/subjects", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := splitList(data, "subjects", "items")
	if err != nil {
		return nil, err
	}
	var rows []subjectPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, err
	}
	out := make([]Subject, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.normalize())
	}
	return out, nil
}

// TopicFilter narrows the topic list server-side. Empty fields are not sent.
type TopicFilter struct {
	SubjectID string
	ClassID   string
}

func (s *ContentService) Topics(ctx context.Context, f TopicFilter) ([]Topic, error) {
	q := url.Values{}
	if f.SubjectID != "" {
		q.Set("subjectId", f.SubjectID)
	}
	if f.ClassID != "" {
		q.Set("classId", f.ClassID)
	}
	data, err := s.api.Get(ctx, "/admin/topics", q)
	if err != nil {
		return nil, err
	}
	items, _, err := splitList(data, "topics", "items")
	if err != nil {
		return nil, err
	}
	var rows []topicPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, err
	}
	out := make([]Topic, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.normalize())
	}
	return out, nil
}

/* ---------------- mutations ---------------- */

func (s *ContentService) CreateExam(ctx context.Context, d ExamDraft) (Exam, error) {
	if err := validate.Struct(d); err != nil {
		return Exam{}, err
	}
	data, err := s.api.Post(ctx, "/admin/exams", d.payload())
	if err != nil {
		return Exam{}, err
	}
	var p examPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Exam{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) UpdateExam(ctx context.Context, id string, d ExamDraft) (Exam, error) {
	if err := validate.Struct(d); err != nil {
		return Exam{}, err
	}
	data, err := s.api.Put(ctx, "/admin/exams/"+url.PathEscape(id), d.payload())
	if err != nil {
		return Exam{}, err
	}
	var p examPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Exam{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) CreateClass(ctx context.Context, d ClassDraft) (Class, error) {
	if err := validate.Struct(d); err != nil {
		return Class{}, err
	}
	data, err := s.api.Post(ctx, "/admin/classes", d.payload())
	if err != nil {
		return Class{}, err
	}
	var p classPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Class{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) UpdateClass(ctx context.Context, id string, d ClassDraft) (Class, error) {
	if err := validate.Struct(d); err != nil {
		return Class{}, err
	}
	data, err := s.api.Put(ctx, "/admin/classes/"+url.PathEscape(id), d.payload())
	if err != nil {
		return Class{}, err
	}
	var p classPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Class{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) CreateSubject(ctx context.Context, d SubjectDraft) (Subject, error) {
	if err := validate.Struct(d); err != nil {
		return Subject{}, err
	}
	data, err := s.api.Post(ctx, "/admin/subjects", d.payload())
	if err != nil {
		return Subject{}, err
	}
	var p subjectPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Subject{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) UpdateSubject(ctx context.Context, id string, d SubjectDraft) (Subject, error) {
	if err := validate.Struct(d); err != nil {
		return Subject{}, err
	}
	data, err := s.api.Put(ctx, "/admin/subjects/"+url.PathEscape(id), d.payload())
	if err != nil {
		return Subject{}, err
	}
	var p subjectPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Subject{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) CreateTopic(ctx context.Context, d TopicDraft) (Topic, error) {
	if err := validate.Struct(d); err != nil {
		return Topic{}, err
	}
	data, err := s.api.Post(ctx, "/admin/topics", d.payload())
	if err != nil {
		return Topic{}, err
	}
	var p topicPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Topic{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) UpdateTopic(ctx context.Context, id string, d TopicDraft) (Topic, error) {
	if err := validate.Struct(d); err != nil {
		return Topic{}, err
	}
	data, err := s.api.Put(ctx, "/admin/topics/"+url.PathEscape(id), d.payload())
	if err != nil {
		return Topic{}, err
	}
	var p topicPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Topic{}, err
	}
	return p.normalize(), nil
}

func (s *ContentService) DeleteTopic(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, "/admin/topics/"+url.PathEscape(id))
	return err
}

/* ---------------- composite load ---------------- */

// Bundle holds the four content lists loaded together for the content screen.
type Bundle struct {
	Exams    []Exam
	Classes  []Class
	Subjects []Subject
	Topics   []Topic
}

// LoadAll fetches the four lists concurrently. A failed fetch leaves its
// slice empty and does not disturb the others; an error is returned only when
// every fetch failed.
func (s *ContentService) LoadAll(ctx context.Context) (Bundle, error) {
	var (
		wg   sync.WaitGroup
		b    Bundle
		errs [4]error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		b.Exams, errs[0] = s.Exams(ctx)
	}()
	go func() {
		defer wg.Done()
		b.Classes, errs[1] = s.Classes(ctx)
	}()
	go func() {
		defer wg.Done()
		b.Subjects, errs[2] = s.Subjects(ctx)
	}()
	go func() {
		defer wg.Done()
		b.Topics, errs[3] = s.Topics(ctx, TopicFilter{})
	}()
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		switch i {
		case 0:
			b.Exams = []Exam{}
		case 1:
			b.Classes = []Class{}
		case 2:
			b.Subjects = []Subject{}
		case 3:
			b.Topics = []Topic{}
		}
	}
	if failed == len(errs) {
		return Bundle{}, errors.Join(errs[:]...)
	}
	return b, nil
}
