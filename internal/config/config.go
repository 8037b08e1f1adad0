package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	RedisURL        string
	LogLevel        string
	Env             string
	CORSOrigin      string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "3000"),
		DatabaseURL:     databaseURL(),
		RedisURL:        getenv("REDIS_URL", ""),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		Env:             getenv("APP_ENV", "development"),
		CORSOrigin:      getenv("CORS_ALLOWED_ORIGIN", "*"),
		ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// libpq-style PG* variables.
func databaseURL() string {
	if v := getenv("DATABASE_URL", ""); v != "" {
		return v
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(getenv("PGHOST", "localhost"), getenv("PGPORT", "5432")),
		Path:   "/" + getenv("PGDATABASE", "postgres"),
	}
	user := getenv("PGUSER", "postgres")
	if pw, ok := os.LookupEnv("PGPASSWORD"); ok {
		u.User = url.UserPassword(user, pw)
	} else {
		u.User = url.User(user)
	}
	q := url.Values{}
	q.Set("sslmode", getenv("PGSSLMODE", "require"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
