package cloudrun

import (
	"fmt"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/account-viewer/infra/common"
	dockerrepo "github.com/GregMSThompson/account-viewer/infra/docker"
	"github.com/GregMSThompson/account-viewer/infra/secret"
)

const containerPort = 8080

type secretRefs struct {
	usernameName pulumi.StringOutput
	passwordName pulumi.StringOutput
}

// Accounts are the identities the two services run as.
type Accounts struct {
	Proxy  *serviceaccount.Account
	Viewer *serviceaccount.Account
}

// Services holds the deployed proxy and viewer.
type Services struct {
	Proxy  *cloudrun.Service
	Viewer *cloudrun.Service
}

func SetupCloudRun(ctx *pulumi.Context,
	prov *gcp.Provider,
	accts Accounts,
	kmsKeyName pulumi.StringOutput,
	res ...pulumi.Resource) (*Services, error) {
	hash, err := common.GenerateHash("../")
	if err != nil {
		return nil, err
	}

	proxyImg, err := buildImage(ctx, "proxyImage", "account-proxy", "../cmd/api/Dockerfile", hash, res...)
	if err != nil {
		return nil, err
	}
	viewerImg, err := buildImage(ctx, "viewerImage", "account-viewer", "../cmd/viewer/Dockerfile", hash, res...)
	if err != nil {
		return nil, err
	}

	sr, err := createSecrets(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return nil, err
	}

	proxy, err := createService(ctx, "proxyService", proxyImg, accts.Proxy,
		proxyEnvs(ctx, sr, kmsKeyName), prov, srv)
	if err != nil {
		return nil, err
	}

	// the viewer reaches the proxy at its public run.app url
	proxyURL := proxy.Statuses.Index(pulumi.Int(0)).Url().Elem()
	viewer, err := createService(ctx, "viewerService", viewerImg, accts.Viewer,
		viewerEnvs(ctx, proxyURL), prov, srv)
	if err != nil {
		return nil, err
	}

	for name, svc := range map[string]*cloudrun.Service{"proxyInvoker": proxy, "viewerInvoker": viewer} {
		if err := setIAMAccessPolicy(ctx, name, svc, prov); err != nil {
			return nil, err
		}
	}

	return &Services{Proxy: proxy, Viewer: viewer}, nil
}

func buildImage(ctx *pulumi.Context, resourceName, imageName, dockerfile, hash string, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return docker.NewImage(ctx, resourceName, &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."), // build from repo root
			Dockerfile: pulumi.String(dockerfile),
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/%s/%s:%s",
			region, projectID, dockerrepo.RepositoryID, imageName, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func secretEnv(name string, secretName pulumi.StringOutput) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
	return &cloudrun.ServiceTemplateSpecContainerEnvArgs{
		Name: pulumi.String(name),
		ValueFrom: &cloudrun.ServiceTemplateSpecContainerEnvValueFromArgs{
			SecretKeyRef: &cloudrun.ServiceTemplateSpecContainerEnvValueFromSecretKeyRefArgs{
				Name: secretName,
				Key:  pulumi.String("latest"),
			},
		},
	}
}

func plainEnv(name string, value pulumi.StringInput) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
	return &cloudrun.ServiceTemplateSpecContainerEnvArgs{
		Name:  pulumi.String(name),
		Value: value,
	}
}

// proxyEnvs injects the Treasury Prime credentials from Secret Manager. When
// treasury:passwordCiphertext is set the password is decrypted with KMS at
// startup instead.
func proxyEnvs(ctx *pulumi.Context, sr *secretRefs, kmsKeyName pulumi.StringOutput) cloudrun.ServiceTemplateSpecContainerEnvArray {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	tpCfg := config.New(ctx, "treasury")

	envs := cloudrun.ServiceTemplateSpecContainerEnvArray{
		plainEnv("PROJECTID", pulumi.String(gcpCfg.Require("project"))),
		plainEnv("LOGLEVEL", pulumi.String(crCfg.Require("logLevel"))),
		plainEnv("TREASURY_PRIME_BASE_URL", pulumi.String(tpCfg.Require("baseUrl"))),
		plainEnv("KMSKEYNAME", kmsKeyName),
		secretEnv("TREASURY_PRIME_USERNAME", sr.usernameName),
	}

	if ciphertext := tpCfg.Get("passwordCiphertext"); ciphertext != "" {
		return append(envs, plainEnv("TREASURY_PRIME_PASSWORD_CIPHERTEXT", pulumi.String(ciphertext)))
	}
	return append(envs, secretEnv("TREASURY_PRIME_PASSWORD", sr.passwordName))
}

func viewerEnvs(ctx *pulumi.Context, proxyURL pulumi.StringOutput) cloudrun.ServiceTemplateSpecContainerEnvArray {
	crCfg := config.New(ctx, "cloudrun")
	tpCfg := config.New(ctx, "treasury")

	return cloudrun.ServiceTemplateSpecContainerEnvArray{
		plainEnv("LOGLEVEL", pulumi.String(crCfg.Require("logLevel"))),
		plainEnv("ACCOUNT_ID", pulumi.String(tpCfg.Require("accountId"))),
		plainEnv("PROXY_URL", proxyURL),
		plainEnv("VIEWER_PORT", pulumi.String(strconv.Itoa(containerPort))),
	}
}

func createService(ctx *pulumi.Context,
	name string,
	img *docker.Image,
	sa *serviceaccount.Account,
	envs cloudrun.ServiceTemplateSpecContainerEnvArray,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")

	region := gcpCfg.Require("region")
	minScale := crCfg.Require("minScale")
	maxScale := crCfg.Require("maxScale")
	cpu := crCfg.Require("cpu")
	memory := crCfg.Require("memory")
	concurrency := crCfg.Require("concurrency")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	return cloudrun.NewService(ctx, name, &cloudrun.ServiceArgs{
		Location: pulumi.String(region),

		Template: &cloudrun.ServiceTemplateArgs{

			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				// ---- AUTOSCALING + INSTANCE SIZE ----
				Annotations: pulumi.StringMap{
					// Autoscaling bounds
					"autoscaling.knative.dev/minScale": pulumi.String(minScale),
					"autoscaling.knative.dev/maxScale": pulumi.String(maxScale),

					// Instance sizing
					"run.googleapis.com/cpu":    pulumi.String(cpu),
					"run.googleapis.com/memory": pulumi.String(memory),

					// Allow throttling when idle (reduces cost)
					"run.googleapis.com/cpu-throttling": pulumi.String("true"),

					// Set the number of concurrent requests per container
					"run.googleapis.com/container-concurrency": pulumi.String(concurrency),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: sa.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(containerPort),
							},
						},
						Envs: envs,
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func setIAMAccessPolicy(ctx *pulumi.Context, name string, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	// There is no end-user auth; the browser calls both services directly.
	_, err := cloudrun.NewIamMember(ctx, name, &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}

func createSecrets(ctx *pulumi.Context) (*secretRefs, error) {
	var err error
	sr := new(secretRefs)

	tpCfg := config.New(ctx, "treasury")
	username := tpCfg.RequireSecret("username")

	sr.usernameName, err = secret.AddSecret(ctx, "treasuryUsernameSecret", "treasury-prime-username", username)
	if err != nil {
		return nil, err
	}

	// a KMS ciphertext replaces the password secret entirely
	if tpCfg.Get("passwordCiphertext") != "" {
		return sr, nil
	}
	password := tpCfg.RequireSecret("password")
	sr.passwordName, err = secret.AddSecret(ctx, "treasuryPasswordSecret", "treasury-prime-password", password)
	if err != nil {
		return nil, err
	}

	return sr, nil
}
