package dealers

import (
	"github.com/forecourt/go-dealers/core"
	"github.com/forecourt/go-dealers/export"
	"github.com/forecourt/go-dealers/identity"
	sqlstore "github.com/forecourt/go-dealers/store/sql"

	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Collaborator constructors, re-exported so host applications wiring the
// engine only import the root package.

func SQLStoreFactory(client *persistence.Client) (*sqlstore.RepositoryFactory, error) {
	return sqlstore.NewRepositoryFactoryFromPersistence(client)
}

func SQLStoreFactoryFromDB(db *bun.DB) (*sqlstore.RepositoryFactory, error) {
	return sqlstore.NewRepositoryFactoryFromDB(db)
}

func CachedCredentialStore(base core.CredentialStore, cacheService repositorycache.CacheService) (*sqlstore.CachedCredentialStore, error) {
	return sqlstore.NewCachedCredentialStore(base, cacheService)
}

func IdentityInvitationSender(cfg identity.Config) (*identity.Sender, error) {
	return identity.NewSender(cfg)
}

func FeedExporterFor(cfg core.ExportConfig, source core.FeedSource, opts ...export.Option) (*export.Exporter, error) {
	return export.NewExporter(cfg, source, opts...)
}
