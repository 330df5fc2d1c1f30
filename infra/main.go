package main

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/store-tracker/infra/cloudrun"
	"github.com/GregMSThompson/store-tracker/infra/firestore"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		prov, err := defaultProvider(ctx)
		if err != nil {
			return err
		}

		// database plus the composite indexes the ledger queries need
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		return cloudrun.SetupCloudRun(ctx, prov, db)
	})
}

func defaultProvider(ctx *pulumi.Context) (*gcp.Provider, error) {
	gcpCfg := config.New(ctx, "gcp")

	return gcp.NewProvider(ctx, "gcpProvider", &gcp.ProviderArgs{
		Project:             pulumi.String(gcpCfg.Require("project")),
		Region:              pulumi.String(gcpCfg.Require("region")),
		UserProjectOverride: pulumi.Bool(true),
	})
}
