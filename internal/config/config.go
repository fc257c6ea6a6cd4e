package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client configures the admin CLI side: where the backend lives and where the
// session file is persisted.
type Client struct {
	BaseURL     string
	SessionPath string
	HTTPTimeout time.Duration
}

// Stub configures the local stub backend used for development and tests.
type Stub struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	AdminEmail    string
	AdminPassHash string // bcrypt

	UploadBasePath string
	CORSOrigins    []string
}

func ClientFromEnv() Client {
	base := envOr("PREPADMIN_API_URL", "http://localhost:8090")
	return Client{
		BaseURL:     strings.TrimSuffix(base, "/"),
		SessionPath: envOr("PREPADMIN_SESSION_FILE", defaultSessionPath()),
		HTTPTimeout: envDuration("PREPADMIN_HTTP_TIMEOUT", 30*time.Second),
	}
}

func StubFromEnv() Stub {
	return Stub{
		HTTPAddr:       envOr("HTTP_ADDR", ":8090"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		AuthSecret:     envOr("AUTH_HMAC_SECRET", "stub-dev-secret"),
		AdminEmail:     envOr("ADMIN_EMAIL", "admin@prepstack.dev"),
		AdminPassHash:  envOr("ADMIN_PASS_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), // "secret"
		UploadBasePath: envOr("UPLOAD_BASE_PATH", "./data/uploads"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prepadmin-session.json"
	}
	return filepath.Join(home, ".prepadmin", "session.json")
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
