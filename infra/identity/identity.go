package identity

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// SetupProxyAccount creates the service account the proxy runs as. It is the
// only principal granted access to the banking credentials.
func SetupProxyAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	return serviceaccount.NewAccount(ctx, "proxyServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("account-proxy"),
		DisplayName: pulumi.String("Account Proxy Service Account"),
	},
		pulumi.Provider(prov),
	)
}

// SetupViewerAccount creates the service account for the display client,
// which holds no secrets.
func SetupViewerAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	return serviceaccount.NewAccount(ctx, "viewerServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("account-viewer"),
		DisplayName: pulumi.String("Account Viewer Service Account"),
	},
		pulumi.Provider(prov),
	)
}

// Member formats a service account for IAM bindings.
func Member(sa *serviceaccount.Account) pulumi.StringOutput {
	return sa.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)
}
