// Package stubapi is a self-contained stand-in for the exam-prep admin
// backend, used for local development and integration tests. It speaks the
// same envelope and field conventions as the live service: snake_case on
// reads, camelCase drafts on writes, {success, data, message?} everywhere.
package stubapi

import "errors"

var ErrNotFound = errors.New("not found")

type Exam struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ExamDate          string `json:"exam_date"`
	TargetClassLevels []int  `json:"target_class_levels"`
	PrepClassLevels   []int  `json:"prep_class_levels"`
	Description       string `json:"description,omitempty"`
	IsActive          bool   `json:"is_active"`
	CreatedAt         string `json:"created_at"`
}

type Class struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MinClassLevel int    `json:"min_class_level"`
	MaxClassLevel int    `json:"max_class_level"`
	ExamID        string `json:"exam_id,omitempty"`
	ExamName      string `json:"exam_name,omitempty"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

type Subject struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OrderIndex    int    `json:"order_index"`
	MinClassLevel int    `json:"min_class_level,omitempty"`
	MaxClassLevel int    `json:"max_class_level,omitempty"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	ClassID     string `json:"class_id"`
	ClassName   string `json:"class_name,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	ParentName  string `json:"parent_name,omitempty"`
	OrderIndex  int    `json:"order_index"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

type Answer struct {
	ID          string `json:"id"`
	QuestionID  string `json:"question_id"`
	OptionLabel string `json:"option_label"`
	Text        string `json:"answer_text,omitempty"`
	ImageURL    string `json:"answer_image_url,omitempty"`
	IsCorrect   bool   `json:"is_correct"`
	OrderIndex  int    `json:"order_index"`
}

type Question struct {
	ID                 string   `json:"id"`
	TopicID            string   `json:"topic_id"`
	TopicName          string   `json:"topic_name,omitempty"`
	SubjectName        string   `json:"subject_name,omitempty"`
	ClassName          string   `json:"class_name,omitempty"`
	DifficultyLevel    string   `json:"difficulty_level"`
	QuestionText       string   `json:"question_text,omitempty"`
	QuestionImageURL   string   `json:"question_image_url,omitempty"`
	QuestionPDFURL     string   `json:"question_pdf_url,omitempty"`
	SolutionText       string   `json:"solution_text,omitempty"`
	SolutionImageURL   string   `json:"solution_image_url,omitempty"`
	SolutionPDFURL     string   `json:"solution_pdf_url,omitempty"`
	HasMultipleCorrect bool     `json:"has_multiple_correct"`
	Explanation        string   `json:"explanation,omitempty"`
	Keywords           []string `json:"keywords"`
	EstimatedTime      int      `json:"estimated_time,omitempty"`
	IsActive           bool     `json:"is_active"`
	CreatedAt          string   `json:"created_at"`
	Answers            []Answer `json:"answers"`
}

type User struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Gender      string `json:"gender"`
	ClassID     string `json:"class_id,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
	ExamID      string `json:"exam_id,omitempty"`
	ExamName    string `json:"exam_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// UserDetail mirrors the live backend quirk of a camelCase stats block inside
// an otherwise snake_case document.
type UserDetail struct {
	User
	ExamDate string    `json:"exam_date,omitempty"`
	Stats    UserStats `json:"stats"`
}

type UserStats struct {
	TotalGoals     int `json:"totalGoals"`
	CompletedGoals int `json:"completedGoals"`
	TotalPrograms  int `json:"totalPrograms"`
}

type AvailabilitySlot struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Intensity string `json:"intensity,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

type OnboardingProfile struct {
	ID                     string             `json:"id"`
	PhoneNumber            string             `json:"phone_number"`
	Name                   string             `json:"name"`
	Surname                string             `json:"surname"`
	CreatedAt              string             `json:"created_at"`
	ProfileType            string             `json:"profile_type,omitempty"`
	PrimaryGoal            string             `json:"primary_goal,omitempty"`
	TargetDate             string             `json:"target_date,omitempty"`
	ExamType               string             `json:"exam_type,omitempty"`
	Motivation             string             `json:"motivation,omitempty"`
	StudyFocusAreas        []string           `json:"study_focus_areas,omitempty"`
	DailyAvailableMinutes  int                `json:"daily_available_minutes,omitempty"`
	WeeklyAvailableMinutes int                `json:"weekly_available_minutes,omitempty"`
	PreferredStudyTimes    string             `json:"preferred_study_times,omitempty"`
	LearningStyle          string             `json:"learning_style,omitempty"`
	ReminderTime           string             `json:"reminder_time,omitempty"`
	ProfileUpdatedAt       string             `json:"profile_updated_at,omitempty"`
	Availability           []AvailabilitySlot `json:"availability"`
}

/* ---------------- incoming drafts (camelCase) ---------------- */

type examDraft struct {
	Name              string `json:"name"`
	ExamDate          string `json:"examDate"`
	TargetClassLevels []int  `json:"targetClassLevels"`
	PrepClassLevels   []int  `json:"prepClassLevels"`
	Description       string `json:"description"`
}

type classDraft struct {
	Name          string `json:"name"`
	MinClassLevel int    `json:"minClassLevel"`
	MaxClassLevel int    `json:"maxClassLevel"`
	ExamID        string `json:"examId"`
}

type subjectDraft struct {
	Name          string `json:"name"`
	OrderIndex    int    `json:"orderIndex"`
	MinClassLevel int    `json:"minClassLevel"`
	MaxClassLevel int    `json:"maxClassLevel"`
}

type topicDraft struct {
	Name       string `json:"name"`
	SubjectID  string `json:"subjectId"`
	ClassID    string `json:"classId"`
	ParentID   string `json:"parentId"`
	OrderIndex int    `json:"orderIndex"`
}

type answerDraft struct {
	OptionLabel string `json:"optionLabel"`
	Text        string `json:"answerText"`
	ImageURL    string `json:"answerImageUrl"`
	IsCorrect   bool   `json:"isCorrect"`
	OrderIndex  int    `json:"orderIndex"`
}

type questionDraft struct {
	TopicID            string        `json:"topicId"`
	DifficultyLevel    string        `json:"difficultyLevel"`
	QuestionText       string        `json:"questionText"`
	QuestionImageURL   string        `json:"questionImageUrl"`
	QuestionPDFURL     string        `json:"questionPdfUrl"`
	SolutionText       string        `json:"solutionText"`
	SolutionImageURL   string        `json:"solutionImageUrl"`
	SolutionPDFURL     string        `json:"solutionPdfUrl"`
	HasMultipleCorrect bool          `json:"hasMultipleCorrect"`
	Explanation        string        `json:"explanation"`
	Keywords           []string      `json:"keywords"`
	EstimatedTime      int           `json:"estimatedTime"`
	Answers            []answerDraft `json:"answers"`
}
