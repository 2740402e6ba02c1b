package kms

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/kms"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/account-viewer/infra/identity"
)

var (
	service *projects.Service
)

func SetupKMS(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	var err error
	service, err = projects.NewService(ctx, "kmsService", &projects.ServiceArgs{
		Service: pulumi.String("cloudkms.googleapis.com"),
	}, pulumi.Provider(prov))
	if err != nil {
		return nil, err
	}

	return service, nil
}

// CreateDecryptKey creates a key ring + crypto key that sa may decrypt with
// and returns the crypto key ID, which the proxy reads as KMSKEYNAME.
func CreateDecryptKey(
	ctx *pulumi.Context,
	prov *gcp.Provider,
	sa *serviceaccount.Account,
	keyRingID string,
	keyID string,
) (pulumi.StringOutput, error) {
	gcpCfg := config.New(ctx, "gcp")
	location := gcpCfg.Require("region")
	empty := pulumi.String("").ToStringOutput()

	ring, err := kms.NewKeyRing(ctx, fmt.Sprintf("%s-ring", keyRingID), &kms.KeyRingArgs{
		Location: pulumi.String(location),
		Name:     pulumi.String(keyRingID),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{service}),
	)
	if err != nil {
		return empty, err
	}

	key, err := kms.NewCryptoKey(ctx, fmt.Sprintf("%s-key", keyID), &kms.CryptoKeyArgs{
		KeyRing:        ring.ID(),
		Name:           pulumi.String(keyID),
		Purpose:        pulumi.String("ENCRYPT_DECRYPT"),
		RotationPeriod: pulumi.String("7776000s"), // 90 days
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return empty, err
	}

	_, err = kms.NewCryptoKeyIAMMember(ctx, fmt.Sprintf("%s-decrypter", keyID), &kms.CryptoKeyIAMMemberArgs{
		CryptoKeyId: key.ID(),
		Role:        pulumi.String("roles/cloudkms.cryptoKeyDecrypter"),
		Member:      identity.Member(sa),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return empty, err
	}

	return key.ID().ToStringOutput(), nil
}
