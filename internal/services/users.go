package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/prepstack/prepadmin/internal/rest"
)

type UsersService struct {
	api *rest.Client
}

func NewUsersService(api *rest.Client) *UsersService {
	return &UsersService{api: api}
}

type userPayload struct {
	ID             flexID   `json:"id"`
	PhoneNumber    string   `json:"phone_number"`
	PhoneNumberAlt string   `json:"phoneNumber"`
	Name           string   `json:"name"`
	Surname        string   `json:"surname"`
	Gender         string   `json:"gender"`
	ClassID        flexID   `json:"class_id"`
	ClassIDAlt     flexID   `json:"classId"`
	ClassName      string   `json:"class_name"`
	ClassNameAlt   string   `json:"className"`
	ExamID         flexID   `json:"exam_id"`
	ExamIDAlt      flexID   `json:"examId"`
	ExamName       string   `json:"exam_name"`
	ExamNameAlt    string   `json:"examName"`
	CreatedAt      string   `json:"created_at"`
	CreatedAtAlt   string   `json:"createdAt"`
}

func (p userPayload) normalize() User {
	return User{
		ID:          string(p.ID),
		PhoneNumber: pickStr(p.PhoneNumber, p.PhoneNumberAlt),
		Name:        p.Name,
		Surname:     p.Surname,
		Gender:      p.Gender,
		ClassID:     pickID(p.ClassID, p.ClassIDAlt),
		ClassName:   pickStr(p.ClassName, p.ClassNameAlt),
		ExamID:      pickID(p.ExamID, p.ExamIDAlt),
		ExamName:    pickStr(p.ExamName, p.ExamNameAlt),
		CreatedAt:   pickStr(p.CreatedAt, p.CreatedAtAlt),
	}
}

type userDetailPayload struct {
	userPayload
	ExamDate    string `json:"exam_date"`
	ExamDateAlt string `json:"examDate"`
	Stats       struct {
		TotalGoals        *flexInt `json:"total_goals"`
		TotalGoalsAlt     *flexInt `json:"totalGoals"`
		CompletedGoals    *flexInt `json:"completed_goals"`
		CompletedGoalsAlt *flexInt `json:"completedGoals"`
		TotalPrograms     *flexInt `json:"total_programs"`
		TotalProgramsAlt  *flexInt `json:"totalPrograms"`
	} `json:"stats"`
}

func (p userDetailPayload) normalize() UserDetail {
	return UserDetail{
		User:     p.userPayload.normalize(),
		ExamDate: pickStr(p.ExamDate, p.ExamDateAlt),
		Stats: UserStats{
			TotalGoals:     pickInt(p.Stats.TotalGoals, p.Stats.TotalGoalsAlt),
			CompletedGoals: pickInt(p.Stats.CompletedGoals, p.Stats.CompletedGoalsAlt),
			TotalPrograms:  pickInt(p.Stats.TotalPrograms, p.Stats.TotalProgramsAlt),
		},
	}
}

// UserListParams is the paginated user query. WithSearch resets the page so a
// new search never reuses an old offset.
type UserListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p UserListParams) WithSearch(q string) UserListParams {
	p.Search = q
	p.Page = 1
	return p
}

func (p UserListParams) WithPage(n int) UserListParams {
	p.Page = n
	return p
}

func (p UserListParams) query() url.Values {
	q := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

type UserPage struct {
	Users      []User
	Pagination Pagination
}

func (s *UsersService) List(ctx context.Context, p UserListParams) (UserPage, error) {
	data, err := s.api.Get(ctx, "/admin/users", p.query())
	if err != nil {
		return UserPage{}, err
	}
	items, pg, err := splitList(data, "users", "items")
	if err != nil {
		return UserPage{}, err
	}
	var rows []userPayload
	if err := json.Unmarshal(items, &rows); err != nil {
		return UserPage{}, err
	}
	out := UserPage{Users: make([]User, 0, len(rows))}
	for _, r := range rows {
		out.Users = append(out.Users, r.normalize())
	}
	if pg != nil {
		out.Pagination = *pg
	} else {
		out.Pagination = singlePage(len(out.Users))
	}
	return out, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (UserDetail, error) {
	data, err := s.api.Get(ctx, "/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return UserDetail{}, err
	}
	var p userDetailPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return UserDetail{}, err
	}
	return p.normalize(), nil
}
