package store

import (
	"context"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/store-tracker/internal/errs"
)

// Secret path
// projects/{project}/secrets/{name}[/versions/{version}]

type passcodeStore struct {
	client *secretmanager.Client
	name   string
}

func NewPasscodeStore(client *secretmanager.Client, name string) *passcodeStore {
	return &passcodeStore{client: client, name: name}
}

func (s *passcodeStore) versionName() string {
	if strings.Contains(s.name, "/versions/") {
		return s.name
	}
	return s.name + "/versions/latest"
}

// AdminPasscode reads the admin gate passcode from Secret Manager.
func (s *passcodeStore) AdminPasscode(ctx context.Context) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.versionName(),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", errs.NewNotFoundError("admin passcode secret not found")
		}
		return "", errs.NewDatabaseError("read", "failed to access admin passcode secret", err)
	}
	return strings.TrimSpace(string(res.Payload.Data)), nil
}
