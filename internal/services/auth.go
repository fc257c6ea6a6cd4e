package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prepstack/prepadmin/internal/rest"
	"github.com/prepstack/prepadmin/internal/session"
)

// AuthService owns the two session transitions. Login persists token and
// admin profile only after the backend accepts the credentials, so a failed
// attempt never leaves a partial session. Logout clears the store without any
// network call.
type AuthService struct {
	api      *rest.Client
	sessions *session.Store
}

func NewAuthService(api *rest.Client, sessions *session.Store) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

type adminPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (a *AuthService) Login(ctx context.Context, email, password string) (session.Admin, error) {
	data, err := a.api.Post(ctx, "/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return session.Admin{}, err
	}
	var body struct {
		Token string       `json:"token"`
		Admin adminPayload `json:"admin"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return session.Admin{}, err
	}
	if body.Token == "" {
		return session.Admin{}, errors.New("login response missing token")
	}
	admin := session.Admin{Email: body.Admin.Email, Role: body.Admin.Role}
	if err := a.sessions.Set(body.Token, admin); err != nil {
		return session.Admin{}, err
	}
	return admin, nil
}

func (a *AuthService) Logout() error {
	return a.sessions.Clear()
}

func (a *AuthService) Authenticated() bool {
	return a.sessions.Authenticated()
}

func (a *AuthService) Admin() (session.Admin, bool) {
	return a.sessions.Admin()
}
