package docker

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/artifactregistry"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// RepositoryID is the Artifact Registry repo both images are pushed to.
const RepositoryID = "account-viewer"

func CreateCloudrunRepo(ctx *pulumi.Context, prov *gcp.Provider) (*artifactregistry.Repository, error) {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	return artifactregistry.NewRepository(ctx, "imageRepository", &artifactregistry.RepositoryArgs{
		Format:       pulumi.String("DOCKER"),
		RepositoryId: pulumi.String(RepositoryID),
		Location:     pulumi.String(region),
		Description:  pulumi.String("Docker repository for the account proxy and viewer images"),
	},
		pulumi.Provider(prov),
	)
}
