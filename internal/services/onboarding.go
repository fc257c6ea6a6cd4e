package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/prepstack/prepadmin/internal/rest"
)

type OnboardingService struct {
	api *rest.Client
}

func NewOnboardingService(api *rest.Client) *OnboardingService {
	return &OnboardingService{api: api}
}

// OnboardingStatus filters the profile list server-side.
type OnboardingStatus string

const (
	OnboardingAll       OnboardingStatus = "all"
	OnboardingCompleted OnboardingStatus = "completed"
	OnboardingPending   OnboardingStatus = "pending"
)

type availabilityPayload struct {
	ID           flexID   `json:"id"`
	DayOfWeek    *flexInt `json:"day_of_week"`
	DayOfWeekAlt *flexInt `json:"dayOfWeek"`
	StartTime    string   `json:"start_time"`
	StartTimeAlt string   `json:"startTime"`
	EndTime      string   `json:"end_time"`
	EndTimeAlt   string   `json:"endTime"`
	Intensity    string   `json:"intensity"`
	Priority     string   `json:"priority"`
}

func (p availabilityPayload) normalize() AvailabilitySlot {
	return AvailabilitySlot{
		ID:        string(p.ID),
		DayOfWeek: pickInt(p.DayOfWeek, p.DayOfWeekAlt),
		StartTime: pickStr(p.StartTime, p.StartTimeAlt),
		EndTime:   pickStr(p.EndTime, p.EndTimeAlt),
		Intensity: p.Intensity,
		Priority:  p.Priority,
	}
}

type onboardingPayload struct {
	ID                        flexID                `json:"id"`
	PhoneNumber               string                `json:"phone_number"`
	PhoneNumberAlt            string                `json:"phoneNumber"`
	Name                      string                `json:"name"`
	Surname                   string                `json:"surname"`
	CreatedAt                 string                `json:"created_at"`
	CreatedAtAlt              string                `json:"createdAt"`
	ProfileType               string                `json:"profile_type"`
	ProfileTypeAlt            string                `json:"profileType"`
	PrimaryGoal               string                `json:"primary_goal"`
	PrimaryGoalAlt            string                `json:"primaryGoal"`
	TargetDate                string                `json:"target_date"`
	TargetDateAlt             string                `json:"targetDate"`
	ExamType                  string                `json:"exam_type"`
	ExamTypeAlt               string                `json:"examType"`
	Motivation                string                `json:"motivation"`
	StudyFocusAreas           []string              `json:"study_focus_areas"`
	StudyFocusAreasAlt        []string              `json:"studyFocusAreas"`
	DailyAvailableMinutes     *flexInt              `json:"daily_available_minutes"`
	DailyAvailableMinutesAlt  *flexInt              `json:"dailyAvailableMinutes"`
	WeeklyAvailableMinutes    *flexInt              `json:"weekly_available_minutes"`
	WeeklyAvailableMinutesAlt *flexInt              `json:"weeklyAvailableMinutes"`
	PreferredStudyTimes       string                `json:"preferred_study_times"`
	PreferredStudyTimesAlt    string                `json:"preferredStudyTimes"`
	LearningStyle             string                `json:"learning_style"`
	LearningStyleAlt          string                `json:"learningStyle"`
	ReminderTime              string                `json:"reminder_time"`
	ReminderTimeAlt           string                `json:"reminderTime"`
	ProfileUpdatedAt          string                `json:"profile_updated_at"`
	ProfileUpdatedAtAlt       string                `json:"profileUpdatedAt"`
	Availability              []availabilityPayload `json:"availability"`
}

func (p onboardingPayload) normalize() OnboardingProfile {
	slots := make([]AvailabilitySlot, 0, len(p.Availability))
	for _, s := range p.Availability {
		slots = append(slots, s.normalize())
	}
	return OnboardingProfile{
		ID:                     string(p.ID),
		PhoneNumber:            pickStr(p.PhoneNumber, p.PhoneNumberAlt),
		Name:                   p.Name,
		Surname:                p.Surname,
		CreatedAt:              pickStr(p.CreatedAt, p.CreatedAtAlt),
		ProfileType:            pickStr(p.ProfileType, p.ProfileTypeAlt),
		PrimaryGoal:            pickStr(p.PrimaryGoal, p.PrimaryGoalAlt),
		TargetDate:             pickStr(p.TargetDate, p.TargetDateAlt),
		ExamType:               pickStr(p.ExamType, p.ExamTypeAlt),
		Motivation:             p.Motivation,
		StudyFocusAreas:        pickStrs(p.StudyFocusAreas, p.StudyFocusAreasAlt),
		DailyAvailableMinutes:  pickInt(p.DailyAvailableMinutes, p.DailyAvailableMinutesAlt),
		WeeklyAvailableMinutes: pickInt(p.WeeklyAvailableMinutes, p.WeeklyAvailableMinutesAlt),
		PreferredStudyTimes:    pickStr(p.PreferredStudyTimes, p.PreferredStudyTimesAlt),
		LearningStyle:          pickStr(p.LearningStyle, p.LearningStyleAlt),
		ReminderTime:           pickStr(p.ReminderTime, p.ReminderTimeAlt),
		ProfileUpdatedAt:       pickStr(p.ProfileUpdatedAt, p.ProfileUpdatedAtAlt),
		Availability:           slots,
	}
}

func (s *OnboardingService) Profiles(ctx context.Context, status OnboardingStatus) ([]OnboardingProfile, error) {
	q := url.Values{}
	if status != "" && status != OnboardingAll {
		q.Set("status", string(status))
	}
	data, err := s.api.Get(ctx, "/admin/onboarding/profiles", q)
	if err != nil {
		return nil, err
	}
	items, _, err := splitList(data, "profiles", "items")
	if err != nil {
		return nil, err
	}
	var rows []onboardingPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, err
	}
	out := make([]OnboardingProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.normalize())
	}
	return out, nil
}
