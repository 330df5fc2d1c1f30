package bootstrap

import (
	"context"
	"testing"

	"github.com/GregMSThompson/store-tracker/internal/config"
)

func TestRunMemoryBackend(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendMemory, Timezone: "UTC", LogLevel: "error"}

	bs, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer bs.Close()

	if bs.Records == nil || bs.Firestore != nil {
		t.Fatalf("expected memory records without a firestore client: %+v", bs)
	}
	if bs.Location.String() != "UTC" {
		t.Fatalf("unexpected location %s", bs.Location)
	}
}

func TestAdminPasscodeFromConfig(t *testing.T) {
	bs := &Bootstrap{}
	got, err := bs.AdminPasscode(context.Background(), &config.Config{AdminPasscode: "letmein"})
	if err != nil || got != "letmein" {
		t.Fatalf("got %q, %v", got, err)
	}
	if bs.Secrets != nil {
		t.Fatal("secret manager should not be dialled without a secret name")
	}
}
