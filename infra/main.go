package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/account-viewer/infra/cloudrun"
	"github.com/GregMSThompson/account-viewer/infra/docker"
	"github.com/GregMSThompson/account-viewer/infra/identity"
	"github.com/GregMSThompson/account-viewer/infra/kms"
	"github.com/GregMSThompson/account-viewer/infra/provider"
	"github.com/GregMSThompson/account-viewer/infra/secret"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		proxySA, err := identity.SetupProxyAccount(ctx, prov)
		if err != nil {
			return err
		}
		viewerSA, err := identity.SetupViewerAccount(ctx, prov)
		if err != nil {
			return err
		}

		// banking credentials live in secret manager, readable by the proxy only
		smService, err := secret.SetupSecretManager(ctx, prov, proxySA)
		if err != nil {
			return err
		}

		kmsService, err := kms.SetupKMS(ctx, prov)
		if err != nil {
			return err
		}
		keyName, err := kms.CreateDecryptKey(ctx, prov, proxySA, "account-proxy", "treasury-credentials")
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		svcs, err := cloudrun.SetupCloudRun(ctx, prov,
			cloudrun.Accounts{Proxy: proxySA, Viewer: viewerSA},
			keyName,
			repo, smService, kmsService)
		if err != nil {
			return err
		}

		ctx.Export("proxyUrl", svcs.Proxy.Statuses.Index(pulumi.Int(0)).Url())
		ctx.Export("viewerUrl", svcs.Viewer.Statuses.Index(pulumi.Int(0)).Url())
		ctx.Export("kmsKeyName", keyName)
		return nil
	})
}
