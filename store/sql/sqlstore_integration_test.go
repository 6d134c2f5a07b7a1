package sqlstore_test

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"

	"github.com/forecourt/go-dealers/core"
	dealermigrations "github.com/forecourt/go-dealers/migrations"
	sqlstore "github.com/forecourt/go-dealers/store/sql"
)

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:dealers-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	client, err := sqlstore.NewClient(sqlstore.ClientConfig{
		Driver: sqlstore.DriverSQLite,
		Server: dsn,
	})
	if err != nil {
		t.Fatalf("new sqlite client: %v", err)
	}

	ctx := context.Background()
	_, err = dealermigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != dealermigrations.DialectSQLite {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, dealermigrations.WithValidationTargets(dealermigrations.DialectSQLite))
	if err != nil {
		_ = client.Close()
		t.Fatalf("register migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	for _, table := range []string{"dealers", "dealer_credentials", "join_submissions", "vehicles"} {
		var tableName string
		if err := client.DB().NewRaw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
			table,
		).Scan(context.Background(), &tableName); err != nil {
			t.Fatalf("query sqlite master for %s: %v", table, err)
		}
		if tableName != table {
			t.Fatalf("expected %s table, got %q", table, tableName)
		}
	}
}

func TestCredentialStore_WriteEnforcesOneRecordPerDealer(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.CredentialStore()
	if store == nil {
		t.Fatalf("expected credential store from factory")
	}

	created, err := store.Write(ctx, core.WriteCredentialInput{
		DealerID:                   "dlr_1",
		AdvertisementID:            "ADV-100",
		AdditionalAdvertisementIDs: []string{"ADV-200"},
		PrimaryAdvertisementID:     "ADV-100",
		AdvertisementIDsParsed:     []string{"ADV-100", "ADV-200"},
		CompanyName:                "Alpha Cars Ltd",
	})
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	if !created {
		t.Fatalf("expected first write to create")
	}

	created, err = store.Write(ctx, core.WriteCredentialInput{
		DealerID:               "dlr_1",
		AdvertisementID:        "ADV-300",
		PrimaryAdvertisementID: "ADV-300",
		AdvertisementIDsParsed: []string{"ADV-300"},
	})
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if created {
		t.Fatalf("expected second write to update the existing record")
	}

	record, found, err := store.Get(ctx, "dlr_1")
	if err != nil || !found {
		t.Fatalf("get after update: found=%v err=%v", found, err)
	}
	if record.AdvertisementID != "ADV-300" || record.PrimaryAdvertisementID != "ADV-300" {
		t.Fatalf("expected updated shape columns, got %#v", record)
	}
	if len(record.AdditionalAdvertisementIDs) != 0 {
		t.Fatalf("expected additional ids cleared by update, got %#v", record.AdditionalAdvertisementIDs)
	}
	// extras are written as given, not merged with the prior record
	if record.CompanyName != "" {
		t.Fatalf("expected company name overwritten, got %q", record.CompanyName)
	}
}

func TestCredentialStore_ClearKeepsRowRemovesAccess(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}
	store := factory.CredentialStore()

	if _, err := store.Write(ctx, core.WriteCredentialInput{
		DealerID:               "dlr_9",
		AdvertisementID:        "ADV-900",
		PrimaryAdvertisementID: "ADV-900",
		AdvertisementIDsParsed: []string{"ADV-900"},
		IntegrationID:          "int_900",
		CompanyName:            "Alpha Cars Ltd",
		CompanyLogoURL:         "https://cdn.example/logo.png",
	}); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	if err := store.Clear(ctx, "dlr_9"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	record, found, err := store.Get(ctx, "dlr_9")
	if err != nil || !found {
		t.Fatalf("get after clear: found=%v err=%v", found, err)
	}
	if !record.Cleared() {
		t.Fatalf("expected cleared record, got %#v", record)
	}
	if record.IntegrationID != "" || record.CompanyName != "" || record.CompanyLogoURL != "" {
		t.Fatalf("expected extra columns emptied, got %#v", record)
	}

	// clearing again is a no-op
	if err := store.Clear(ctx, "dlr_9"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
