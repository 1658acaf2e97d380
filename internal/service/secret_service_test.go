package service

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	values map[string]string
	closed bool
}

func (f *fakeSecrets) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	v, ok := f.values[req.GetName()]
	if !ok {
		return nil, errors.New("not found")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name:    req.GetName(),
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(v)},
	}, nil
}

func (f *fakeSecrets) Close() error {
	f.closed = true
	return nil
}

func TestSecretVersionName(t *testing.T) {
	assert.Equal(t, "projects/p/secrets/smtp/versions/latest", SecretVersionName("p", "smtp"))
	assert.Equal(t, "projects/q/secrets/smtp/versions/latest", SecretVersionName("p", "projects/q/secrets/smtp"))
	assert.Equal(t, "projects/q/secrets/smtp/versions/3", SecretVersionName("p", "projects/q/secrets/smtp/versions/3"))
}

func TestAccessSecret(t *testing.T) {
	fake := &fakeSecrets{values: map[string]string{
		"projects/p/secrets/smtp-password/versions/latest": "hunter2",
	}}
	svc := &secretService{client: fake, projectID: "p"}

	got, err := svc.AccessSecret(context.Background(), "smtp-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	_, err = svc.AccessSecret(context.Background(), "missing")
	assert.ErrorContains(t, err, "failed to access secret version")

	require.NoError(t, svc.Close())
	assert.True(t, fake.closed)
}

func TestNewSecretServiceRequiresProject(t *testing.T) {
	_, err := NewSecretService(context.Background(), "")
	assert.Error(t, err)
}
