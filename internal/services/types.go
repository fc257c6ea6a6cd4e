// Package services maps backend payloads to canonical client-side entities.
// The backend's field naming has drifted across versions (snake_case and
// camelCase for the same logical field, numeric and string identifiers for
// the same resource), so every shape is fixed here, once, and nothing past
// this boundary branches on casing.
package services

// Difficulty is the question difficulty enumeration. The backend sends either
// the string form or the numeric form 1/2/3.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Pagination is the canonical page descriptor. List endpoints that return a
// bare array get a synthetic single-page descriptor so callers never need to
// know which wire shape an endpoint uses.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	Limit       int
	HasNext     bool
	HasPrev     bool
}

// Identifiers are opaque strings everywhere: the backend has used both
// numeric and string IDs for the same resource, so the only safe comparison
// is string equality.

type Exam struct {
	ID                string
	Name              string
	ExamDate          string
	TargetClassLevels []int
	PrepClassLevels   []int
	Description       string
	IsActive          bool
	CreatedAt         string
}

type Class struct {
	ID            string
	Name          string
	MinClassLevel int
	MaxClassLevel int
	ExamID        string
	ExamName      string
	IsActive      bool
	CreatedAt     string
}

type Subject struct {
	ID            string
	Name          string
	OrderIndex    int
	MinClassLevel int
	MaxClassLevel int
	IsActive      bool
	CreatedAt     string
}

type Topic struct {
	ID          string
	Name        string
	SubjectID   string
	SubjectName string
	ClassID     string
	ClassName   string
	ParentID    string
	ParentName  string
	OrderIndex  int
	IsActive    bool
	CreatedAt   string
}

type Answer struct {
	ID         string
	QuestionID string
	OptionLabel string
	Text       string
	ImageURL   string
	IsCorrect  bool
	OrderIndex int
}

type Question struct {
	ID               string
	TopicID          string
	TopicName        string
	SubjectName      string
	ClassName        string
	Difficulty       Difficulty
	QuestionText     string
	QuestionImageURL string
	QuestionPDFURL   string
	SolutionText     string
	SolutionImageURL string
	SolutionPDFURL   string
	HasMultipleCorrect bool
	Explanation      string
	Keywords         []string
	EstimatedTime    int
	IsActive         bool
	CreatedAt        string
	Answers          []Answer
}

type User struct {
	ID          string
	PhoneNumber string
	Name        string
	Surname     string
	Gender      string
	ClassID     string
	ClassName   string
	ExamID      string
	ExamName    string
	CreatedAt   string
}

type UserStats struct {
	TotalGoals     int
	CompletedGoals int
	TotalPrograms  int
}

type UserDetail struct {
	User
	Stats    UserStats
	ExamDate string
}

type AvailabilitySlot struct {
	ID        string
	DayOfWeek int
	StartTime string
	EndTime   string
	Intensity string
	Priority  string
}

type OnboardingProfile struct {
	ID                     string
	PhoneNumber            string
	Name                   string
	Surname                string
	CreatedAt              string
	ProfileType            string
	PrimaryGoal            string
	TargetDate             string
	ExamType               string
	Motivation             string
	StudyFocusAreas        []string
	DailyAvailableMinutes  int
	WeeklyAvailableMinutes int
	PreferredStudyTimes    string
	LearningStyle          string
	ReminderTime           string
	ProfileUpdatedAt       string
	Availability           []AvailabilitySlot
}

type DashboardSummary struct {
	TotalUsers     int
	TotalQuestions int
	TotalTopics    int
	ActivePrograms int
}

type SubjectStat struct {
	SubjectName   string
	TopicCount    int
	QuestionCount int
}

type DashboardStats struct {
	Summary      DashboardSummary
	RecentUsers  []User
	SubjectStats []SubjectStat
}
