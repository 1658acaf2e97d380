package service

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// SecretService reads credentials the workers should not keep in plain env vars.
type SecretService interface {
	// AccessSecret returns the latest version of the named secret.
	AccessSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

type secretService struct {
	client    secretAccessor
	projectID string
}

// NewSecretService connects to Secret Manager for projectID.
func NewSecretService(ctx context.Context, projectID string, opts ...option.ClientOption) (SecretService, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &secretService{client: client, projectID: projectID}, nil
}

// SecretVersionName resolves a short secret id to its latest version path.
// Fully qualified names are returned unchanged.
func SecretVersionName(projectID, name string) string {
	if strings.HasPrefix(name, "projects/") {
		if strings.Contains(name, "/versions/") {
			return name
		}
		return name + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
}

func (s *secretService) AccessSecret(ctx context.Context, name string) (string, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: SecretVersionName(s.projectID, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return string(result.GetPayload().GetData()), nil
}

func (s *secretService) Close() error {
	return s.client.Close()
}
