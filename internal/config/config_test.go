package config

import (
	"strings"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BACKEND", "BRANDNAME", "TIMEZONE", "DELETEDLIMIT"} {
		t.Setenv(key, "")
	}

	cfg := New()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Backend != BackendFirestore {
		t.Errorf("expected firestore backend, got %q", cfg.Backend)
	}
	if cfg.BrandName != "StoreTracker" {
		t.Errorf("unexpected brand %q", cfg.BrandName)
	}
	if cfg.DeletedLimit != 200 {
		t.Errorf("unexpected deleted limit %d", cfg.DeletedLimit)
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND", "MEMORY")
	t.Setenv("BRANDNAME", "Corner Shop")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("ADMINPASSCODE", "secret")
	t.Setenv("DELETEDLIMIT", "25")

	cfg := New()
	if cfg.Port != "9090" || cfg.Backend != BackendMemory || cfg.BrandName != "Corner Shop" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.DeletedLimit != 25 {
		t.Errorf("expected deleted limit 25, got %d", cfg.DeletedLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Errorf("unexpected location %s", cfg.Location())
	}
}

func TestValidateReportsUnparsableDeletedLimit(t *testing.T) {
	t.Setenv("BACKEND", "memory")
	t.Setenv("ADMINPASSCODE", "secret")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DELETEDLIMIT", "not-a-number")

	cfg := New()
	if cfg.DeletedLimit != 200 {
		t.Errorf("expected fallback limit, got %d", cfg.DeletedLimit)
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), `invalid DELETEDLIMIT "not-a-number"`) {
		t.Fatalf("expected DELETEDLIMIT problem, got %v", err)
	}
	if err := cfg.ValidateReport(); err != nil {
		t.Fatalf("report command does not use DELETEDLIMIT: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Port:         "0",
		Backend:      "sqlite",
		BrandName:    " ",
		Timezone:     "Mars/Olympus",
		DeletedLimit: 0,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"PORT", "BACKEND", "BRANDNAME", "TIMEZONE", "ADMINPASSCODE", "DELETEDLIMIT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestValidateFirestoreNeedsProject(t *testing.T) {
	cfg := &Config{
		Port:          "8080",
		Backend:       BackendFirestore,
		BrandName:     "StoreTracker",
		Timezone:      "UTC",
		AdminPasscode: "x",
		DeletedLimit:  10,
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "PROJECTID") {
		t.Fatalf("expected PROJECTID error, got %v", err)
	}

	cfg.ProjectID = "demo"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Special"}
	if cfg.Location() != time.Local {
		t.Fatalf("expected time.Local fallback, got %v", cfg.Location())
	}
}

func TestValidateReportIgnoresServerSettings(t *testing.T) {
	cfg := &Config{
		Port:      "not-a-port",
		Backend:   BackendMemory,
		BrandName: "StoreTracker",
		Timezone:  "UTC",
	}
	if err := cfg.ValidateReport(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected the server validation to fail")
	}
}
