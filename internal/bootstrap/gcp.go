package bootstrap

import (
	"context"

	kms "cloud.google.com/go/kms/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
)

func InitSecretManager(ctx context.Context) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}

func InitKMS(ctx context.Context) (*kms.KeyManagementClient, error) {
	return kms.NewKeyManagementClient(ctx)
}
