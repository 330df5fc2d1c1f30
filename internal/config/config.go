package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // containers may ship without zoneinfo

	"github.com/joho/godotenv"
)

const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	ProjectID           string
	LogLevel            string
	Port                string
	Backend             string
	BrandName           string
	Timezone            string
	AdminPasscode       string
	AdminPasscodeSecret string // Secret Manager secret or version name
	DeletedLimit        int

	// envProblems holds values that were set but could not be parsed.
	envProblems []string
}

// New reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:           os.Getenv("PROJECTID"),
		LogLevel:            os.Getenv("LOGLEVEL"),
		Port:                getEnv("PORT", "8080"),
		Backend:             strings.ToLower(getEnv("BACKEND", BackendFirestore)),
		BrandName:           getEnv("BRANDNAME", "StoreTracker"),
		Timezone:            getEnv("TIMEZONE", "Local"),
		AdminPasscode:       os.Getenv("ADMINPASSCODE"),
		AdminPasscodeSecret: os.Getenv("ADMINPASSCODESECRET"),
	}
	cfg.DeletedLimit = cfg.getEnvInt("DELETEDLIMIT", 200)
	return cfg
}

// Validate reports every problem with the server configuration at once.
func (c *Config) Validate() error {
	problems := c.storageProblems()
	problems = append(problems, c.envProblems...)

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %q", c.Port))
	}
	if c.AdminPasscode == "" && c.AdminPasscodeSecret == "" {
		problems = append(problems, "one of ADMINPASSCODE or ADMINPASSCODESECRET is required")
	}
	if c.DeletedLimit < 1 {
		problems = append(problems, "DELETEDLIMIT must be positive")
	}
	return joinProblems(problems)
}

// ValidateReport checks only what the offline report command needs.
func (c *Config) ValidateReport() error {
	return joinProblems(c.storageProblems())
}

func (c *Config) storageProblems() []string {
	var problems []string

	switch c.Backend {
	case BackendFirestore:
		if c.ProjectID == "" {
			problems = append(problems, "PROJECTID is required for the firestore backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid BACKEND %q: must be firestore or memory", c.Backend))
	}
	if strings.TrimSpace(c.BrandName) == "" {
		problems = append(problems, "BRANDNAME must not be blank")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid TIMEZONE %q", c.Timezone))
	}
	return problems
}

func joinProblems(problems []string) error {
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the time zone used for day buckets and report dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvInt falls back when key is unset. A value that is set but not an
// integer is recorded for Validate.
func (c *Config) getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.envProblems = append(c.envProblems, fmt.Sprintf("invalid %s %q: must be an integer", key, v))
		return fallback
	}
	return n
}
