package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StoreSQLite   StoreDriver = "sqlite"
	StorePostgres StoreDriver = "postgres"
)

type Config struct {
	HTTPAddr string

	StoreDriver StoreDriver
	DBDSN       string

	LogLevel  string // debug|info|warn|error
	LogFormat string // json|console

	AuthHMACSecret     string
	InstructorUser     string
	InstructorPassHash string // bcrypt; empty enables the dev login (password == username)

	CORSOrigins []string

	SeedSample   bool
	FixturesFile string

	ReportsDir string // archive for exported reports; empty disables it

	Grading GradingConfig
}

// GradingConfig tunes the heuristic engine. Zero values keep the defaults.
type GradingConfig struct {
	Keywords            []string
	LengthSaturation    int
	IdealSentenceLength float64
}

// LoadDotEnv loads variables from the given files (".env" when none) without
// overriding the real environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func FromEnv() Config {
	return Config{
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		StoreDriver:        StoreDriver(strings.ToLower(envOr("STORE_DRIVER", string(StoreMemory)))),
		DBDSN:              os.Getenv("DB_DSN"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "json"),
		AuthHMACSecret:     envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		InstructorUser:     envOr("INSTRUCTOR_USER", "instructor"),
		InstructorPassHash: os.Getenv("INSTRUCTOR_PASS_HASH"),
		CORSOrigins:        csvOr("CORS_ORIGINS", "http://localhost:3000"),
		SeedSample:         envBool("SEED_SAMPLE", true),
		FixturesFile:       os.Getenv("FIXTURES_FILE"),
		ReportsDir:         os.Getenv("REPORTS_DIR"),
		Grading: GradingConfig{
			Keywords:            csvOr("GRADING_KEYWORDS", ""),
			LengthSaturation:    envInt("GRADING_LENGTH_SATURATION", 0),
			IdealSentenceLength: envFloat("GRADING_IDEAL_SENTENCE_WORDS", 0),
		},
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k))); err == nil {
		return v
	}
	return def
}
func envFloat(k string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(k)), 64); err == nil {
		return v
	}
	return def
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
