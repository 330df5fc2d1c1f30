package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const defaultDatabase = "(default)"

// ledgerIndex is one composite index: equality fields first, then date.
type ledgerIndex struct {
	name       string
	collection string
	equality   []string
	orderField string
}

// Every dashboard filter combination pairs equality filters with a date range
// ordered newest first.
var ledgerIndexes = []ledgerIndex{
	{"txByMode", "transactions", []string{"payment_mode"}, "date"},
	{"expByMode", "expenses", []string{"payment_mode"}, "date"},
	{"expByCategory", "expenses", []string{"category"}, "date"},
	{"expByModeCategory", "expenses", []string{"payment_mode", "category"}, "date"},
}

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := enableFirestore(ctx, prov)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	for _, idx := range ledgerIndexes {
		if err := createIndex(ctx, prov, db, idx); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func enableFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(gcpCfg.Require("project")),
		Name:       pulumi.String(defaultDatabase),
		LocationId: pulumi.String(gcpCfg.Require("region")),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func createIndex(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database, idx ledgerIndex) error {
	fields := firestore.IndexFieldArray{}
	for _, f := range idx.equality {
		fields = append(fields, &firestore.IndexFieldArgs{
			FieldPath: pulumi.String(f),
			Order:     pulumi.String("ASCENDING"),
		})
	}
	fields = append(fields, &firestore.IndexFieldArgs{
		FieldPath: pulumi.String(idx.orderField),
		Order:     pulumi.String("DESCENDING"),
	})

	_, err := firestore.NewIndex(ctx, idx.name, &firestore.IndexArgs{
		Database:   db.Name.ToStringPtrOutput(),
		Collection: pulumi.String(idx.collection),
		Fields:     fields,
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{db}),
	)
	return err
}
