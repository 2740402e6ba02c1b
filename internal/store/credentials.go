package store

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/account-viewer/internal/errs"
)

// Secrets are referenced either by full resource name
// projects/{project}/secrets/{id}/versions/{version} or by bare id, which
// resolves to the latest version in the configured project.

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type credentialStore struct {
	client    secretAccessor
	projectID string
}

func NewCredentialStore(client *secretmanager.Client, projectID string) *credentialStore {
	return newCredentialStore(client, projectID)
}

func newCredentialStore(client secretAccessor, projectID string) *credentialStore {
	return &credentialStore{client: client, projectID: projectID}
}

func (s *credentialStore) versionName(ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, "projects/") && strings.Contains(ref, "/versions/"):
		return ref, nil
	case strings.HasPrefix(ref, "projects/"):
		return ref + "/versions/latest", nil
	case s.projectID == "":
		return "", fmt.Errorf("secret %q is not a resource name and no project is configured", ref)
	default:
		return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, ref), nil
	}
}

// GetSecret returns the payload of the referenced secret version.
func (s *credentialStore) GetSecret(ctx context.Context, ref string) (string, error) {
	name, err := s.versionName(ref)
	if err != nil {
		return "", errs.NewCredentialError("secret manager", err)
	}

	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if status.Code(err) == codes.NotFound {
		return "", errs.NewCredentialError("secret manager", fmt.Errorf("secret %s not found", name))
	}
	if err != nil {
		return "", errs.NewCredentialError("secret manager", err)
	}
	return strings.TrimSpace(string(res.GetPayload().GetData())), nil
}
