package sqlstore

import "github.com/forecourt/go-dealers/core"

var (
	_ core.CredentialStore        = (*CredentialStore)(nil)
	_ core.CredentialStore        = (*CachedCredentialStore)(nil)
	_ core.DealerStore            = (*DealerStore)(nil)
	_ core.SubmissionStore        = (*SubmissionStore)(nil)
	_ core.VehicleStore           = (*VehicleStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
