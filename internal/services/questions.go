package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/prepstack/prepadmin/internal/rest"
)

type QuestionsService struct {
	api *rest.Client
}

func NewQuestionsService(api *rest.Client) *QuestionsService {
	return &QuestionsService{api: api}
}

/* ---------------- wire payloads ---------------- */

type answerPayload struct {
	ID             flexID    `json:"id"`
	QuestionID     flexID    `json:"question_id"`
	QuestionIDAlt  flexID    `json:"questionId"`
	OptionLabel    string    `json:"option_label"`
	OptionLabelAlt string    `json:"optionLabel"`
	Text           string    `json:"answer_text"`
	TextAlt        string    `json:"answerText"`
	ImageURL       string    `json:"answer_image_url"`
	ImageURLAlt    string    `json:"answerImageUrl"`
	IsCorrect      *flexBool `json:"is_correct"`
	IsCorrectAlt   *flexBool `json:"isCorrect"`
	OrderIndex     *flexInt  `json:"order_index"`
	OrderIndexAlt  *flexInt  `json:"orderIndex"`
}

func (p answerPayload) normalize() Answer {
	return Answer{
		ID:          string(p.ID),
		QuestionID:  pickID(p.QuestionID, p.QuestionIDAlt),
		OptionLabel: pickStr(p.OptionLabel, p.OptionLabelAlt),
		Text:        pickStr(p.Text, p.TextAlt),
		ImageURL:    pickStr(p.ImageURL, p.ImageURLAlt),
		IsCorrect:   pickBool(p.IsCorrect, p.IsCorrectAlt),
		OrderIndex:  pickInt(p.OrderIndex, p.OrderIndexAlt),
	}
}

type questionPayload struct {
	ID                    flexID          `json:"id"`
	TopicID               flexID          `json:"topic_id"`
	TopicIDAlt            flexID          `json:"topicId"`
	TopicName             string          `json:"topic_name"`
	TopicNameAlt          string          `json:"topicName"`
	SubjectName           string          `json:"subject_name"`
	SubjectNameAlt        string          `json:"subjectName"`
	ClassName             string          `json:"class_name"`
	ClassNameAlt          string          `json:"className"`
	Difficulty            flexDifficulty  `json:"difficulty_level"`
	DifficultyAlt         flexDifficulty  `json:"difficultyLevel"`
	QuestionText          string          `json:"question_text"`
	QuestionTextAlt       string          `json:"questionText"`
	QuestionImageURL      string          `json:"question_image_url"`
	QuestionImageURLAlt   string          `json:"questionImageUrl"`
	QuestionPDFURL        string          `json:"question_pdf_url"`
	QuestionPDFURLAlt     string          `json:"questionPdfUrl"`
	SolutionText          string          `json:"solution_text"`
	SolutionTextAlt       string          `json:"solutionText"`
	SolutionImageURL      string          `json:"solution_image_url"`
	SolutionImageURLAlt   string          `json:"solutionImageUrl"`
	SolutionPDFURL        string          `json:"solution_pdf_url"`
	SolutionPDFURLAlt     string          `json:"solutionPdfUrl"`
	HasMultipleCorrect    *flexBool       `json:"has_multiple_correct"`
	HasMultipleCorrectAlt *flexBool       `json:"hasMultipleCorrect"`
	Explanation           string          `json:"explanation"`
	Keywords              []string        `json:"keywords"`
	EstimatedTime         *flexInt        `json:"estimated_time"`
	EstimatedTimeAlt      *flexInt        `json:"estimatedTime"`
	IsActive              *flexBool       `json:"is_active"`
	IsActiveAlt           *flexBool       `json:"isActive"`
	CreatedAt             string          `json:"created_at"`
	CreatedAtAlt          string          `json:"createdAt"`
	Answers               []answerPayload `json:"answers"`
}

func (p questionPayload) normalize() Question {
	d := Difficulty(pickStr(string(p.Difficulty), string(p.DifficultyAlt)))
	answers := make([]Answer, 0, len(p.Answers))
	for _, a := range p.Answers {
		answers = append(answers, a.normalize())
	}
	kw := p.Keywords
	if kw == nil {
		kw = []string{}
	}
	return Question{
		ID:                 string(p.ID),
		TopicID:            pickID(p.TopicID, p.TopicIDAlt),
		TopicName:          pickStr(p.TopicName, p.TopicNameAlt),
		SubjectName:        pickStr(p.SubjectName, p.SubjectNameAlt),
		ClassName:          pickStr(p.ClassName, p.ClassNameAlt),
		Difficulty:         d,
		QuestionText:       pickStr(p.QuestionText, p.QuestionTextAlt),
		QuestionImageURL:   pickStr(p.QuestionImageURL, p.QuestionImageURLAlt),
		QuestionPDFURL:     pickStr(p.QuestionPDFURL, p.QuestionPDFURLAlt),
		SolutionText:       pickStr(p.SolutionText, p.SolutionTextAlt),
		SolutionImageURL:   pickStr(p.SolutionImageURL, p.SolutionImageURLAlt),
		SolutionPDFURL:     pickStr(p.SolutionPDFURL, p.SolutionPDFURLAlt),
		HasMultipleCorrect: pickBool(p.HasMultipleCorrect, p.HasMultipleCorrectAlt),
		Explanation:        p.Explanation,
		Keywords:           kw,
		EstimatedTime:      pickInt(p.EstimatedTime, p.EstimatedTimeAlt),
		IsActive:           pickBool(p.IsActive, p.IsActiveAlt),
		CreatedAt:          pickStr(p.CreatedAt, p.CreatedAtAlt),
		Answers:            answers,
	}
}

/* ---------------- list params ---------------- */

// QuestionListParams is the paginated question query. The server owns all
// filtering, sorting and pagination math; these values pass through verbatim.
type QuestionListParams struct {
	Page       int
	Limit      int
	TopicID    string
	Difficulty Difficulty
	Search     string
}

// The With* setters return a copy with the filter applied and the page reset
// to 1, so a stale offset is never requested against a newly-filtered set.

func (p QuestionListParams) WithSearch(q string) QuestionListParams {
	p.Search = q
	p.Page = 1
	return p
}

func (p QuestionListParams) WithTopic(id string) QuestionListParams {
	p.TopicID = id
	p.Page = 1
	return p
}

func (p QuestionListParams) WithDifficulty(d Difficulty) QuestionListParams {
	p.Difficulty = d
	p.Page = 1
	return p
}

func (p QuestionListParams) WithPage(n int) QuestionListParams {
	p.Page = n
	return p
}

func (p QuestionListParams) query() url.Values {
	q := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.TopicID != "" {
		q.Set("topicId", p.TopicID)
	}
	if p.Difficulty != "" {
		q.Set("difficultyLevel", string(p.Difficulty))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// QuestionPage is the canonical paginated question list.
type QuestionPage struct {
	Questions  []Question
	Pagination Pagination
}

/* ---------------- operations ---------------- */

func (s *QuestionsService) List(ctx context.Context, p QuestionListParams) (QuestionPage, error) {
	data, err := s.api.Get(ctx, "/admin/questions", p.query())
	if err != nil {
		return QuestionPage{}, err
	}
	items, pg, err := splitList(data, "questions", "items")
	if err != nil {
		return QuestionPage{}, err
	}
	var rows []questionPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return QuestionPage{}, err
	}
	out := QuestionPage{Questions: make([]Question, 0, len(rows))}
	for _, r := range rows {
		out.Questions = append(out.Questions, r.normalize())
	}
	if pg != nil {
		out.Pagination = *pg
	} else {
		out.Pagination = singlePage(len(out.Questions))
	}
	return out, nil
}

func (s *QuestionsService) Create(ctx context.Context, d QuestionDraft) (Question, error) {
	if err := d.Validate(); err != nil {
		return Question{}, err
	}
	data, err := s.api.Post(ctx, "/admin/questions", d.payload())
	if err != nil {
		return Question{}, err
	}
	var p questionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Question{}, err
	}
	return p.normalize(), nil
}

func (s *QuestionsService) Update(ctx context.Context, id string, d QuestionDraft) (Question, error) {
	if err := d.Validate(); err != nil {
		return Question{}, err
	}
	data, err := s.api.Put(ctx, "/admin/questions/"+url.PathEscape(id), d.payload())
	if err != nil {
		return Question{}, err
	}
	var p questionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Question{}, err
	}
	return p.normalize(), nil
}

func (s *QuestionsService) Delete(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, "/admin/questions/"+url.PathEscape(id))
	return err
}

/* ---------------- drafts ---------------- */

type AnswerDraft struct {
	OptionLabel string `validate:"required"`
	Text        string
	ImageURL    string
	IsCorrect   bool
	OrderIndex  int
}

type QuestionDraft struct {
	TopicID            string     `validate:"required"`
	Difficulty         Difficulty `validate:"required,oneof=easy medium hard"`
	QuestionText       string
	QuestionImageURL   string
	QuestionPDFURL     string
	SolutionText       string
	SolutionImageURL   string
	SolutionPDFURL     string
	HasMultipleCorrect bool
	Explanation        string
	Keywords           []string
	EstimatedTime      int
	Answers            []AnswerDraft `validate:"min=1,dive"`
}

// Validate applies the tag rules plus the answer invariants: order indexes
// unique within the question, and more than one correct answer only when
// HasMultipleCorrect is set.
func (d QuestionDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	if d.QuestionText == "" && d.QuestionImageURL == "" && d.QuestionPDFURL == "" {
		return errors.New("question needs text, an image or a pdf")
	}
	seen := map[int]bool{}
	correct := 0
	for _, a := range d.Answers {
		if seen[a.OrderIndex] {
			return fmt.Errorf("duplicate answer order_index %d", a.OrderIndex)
		}
		seen[a.OrderIndex] = true
		if a.IsCorrect {
			correct++
		}
	}
	if correct > 1 && !d.HasMultipleCorrect {
		return errors.New("multiple correct answers require hasMultipleCorrect")
	}
	return nil
}

func (d QuestionDraft) payload() map[string]any {
	answers := make([]map[string]any, 0, len(d.Answers))
	for _, a := range d.Answers {
		answers = append(answers, map[string]any{
			"optionLabel": a.OptionLabel,
			"answerText":  a.Text,
			"isCorrect":   a.IsCorrect,
			"orderIndex":  a.OrderIndex,
		})
		if a.ImageURL != "" {
			answers[len(answers)-1]["answerImageUrl"] = a.ImageURL
		}
	}
	p := map[string]any{
		"topicId":            d.TopicID,
		"difficultyLevel":    string(d.Difficulty),
		"hasMultipleCorrect": d.HasMultipleCorrect,
		"keywords":           d.Keywords,
		"answers":            answers,
	}
	setIf := func(k, v string) {
		if v != "" {
			p[k] = v
		}
	}
	setIf("questionText", d.QuestionText)
	setIf("questionImageUrl", d.QuestionImageURL)
	setIf("questionPdfUrl", d.QuestionPDFURL)
	setIf("solutionText", d.SolutionText)
	setIf("solutionImageUrl", d.SolutionImageURL)
	setIf("solutionPdfUrl", d.SolutionPDFURL)
	setIf("explanation", d.Explanation)
	if d.EstimatedTime > 0 {
		p["estimatedTime"] = d.EstimatedTime
	}
	if d.Keywords == nil {
		p["keywords"] = []string{}
	}
	return p
}
