package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/store-tracker/internal/config"
	"github.com/GregMSThompson/store-tracker/internal/store"
	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Location  *time.Location
	Firestore *firestore.Client
	Secrets   *secretmanager.Client
	Records   store.Records
}

// Run builds the logger and the record store for the configured backend.
// The returned Bootstrap always carries a usable logger, even on error.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Location = cfg.Location()

	switch cfg.Backend {
	case config.BackendMemory:
		bs.Records = store.NewMemoryStore()
		bs.Log.Warn("using in-memory record store; data is lost on restart")
	default:
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, fmt.Errorf("init firestore: %w", err)
		}
		bs.Records = store.NewRecordStore(bs.Firestore)
	}

	bs.Log.Info("bootstrap complete", "backend", cfg.Backend, "timezone", bs.Location.String())
	return bs, nil
}

// AdminPasscode returns the configured passcode, reading it from Secret
// Manager when a secret name is set.
func (bs *Bootstrap) AdminPasscode(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.AdminPasscodeSecret == "" {
		return cfg.AdminPasscode, nil
	}
	if bs.Secrets == nil {
		client, err := InitSecretManager(ctx)
		if err != nil {
			return "", fmt.Errorf("init secret manager: %w", err)
		}
		bs.Secrets = client
	}
	passcode, err := store.NewPasscodeStore(bs.Secrets, cfg.AdminPasscodeSecret).AdminPasscode(ctx)
	if err != nil {
		return "", err
	}
	if passcode == "" {
		return "", errors.New("admin passcode secret is empty")
	}
	return passcode, nil
}

func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.Secrets != nil {
		errList = append(errList, bs.Secrets.Close())
	}
	return errors.Join(errList...)
}
