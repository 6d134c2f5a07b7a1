// Package dealers re-exports the credential assignment engine and its
// collaborator contracts so host applications can depend on one import.
package dealers

import "github.com/forecourt/go-dealers/core"

type Config = core.Config
type ExportConfig = core.ExportConfig

type Option = core.Option

type Engine = core.Engine

type Dealer = core.Dealer
type DealerCredential = core.DealerCredential
type JoinSubmission = core.JoinSubmission
type Vehicle = core.Vehicle

type EditableCredentialState = core.EditableCredentialState
type ReconciledCredential = core.ReconciledCredential
type ReconciledAdvertisementID = core.ReconciledAdvertisementID
type CredentialExtras = core.CredentialExtras

type CommitResult = core.CommitResult
type RevokeResult = core.RevokeResult
type ApproveSubmissionResult = core.ApproveSubmissionResult
type InvitationResult = core.InvitationResult
type FeedExportResult = core.FeedExportResult

type CredentialStore = core.CredentialStore
type DealerStore = core.DealerStore
type SubmissionStore = core.SubmissionStore
type VehicleStore = core.VehicleStore
type InvitationSender = core.InvitationSender
type FeedExporter = core.FeedExporter
type FeedSource = core.FeedSource

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithCredentialStore   = core.WithCredentialStore
	WithDealerStore       = core.WithDealerStore
	WithSubmissionStore   = core.WithSubmissionStore
	WithVehicleStore      = core.WithVehicleStore
	WithInvitationSender  = core.WithInvitationSender
	WithClock             = core.WithClock
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	return core.NewEngine(cfg, opts...)
}

// Setup builds an engine and its facade in one call.
func Setup(cfg Config, opts ...Option) (*Engine, *Facade, error) {
	engine, err := core.NewEngine(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	facade, err := NewFacade(engine, WithExportConfig(cfg.Export))
	if err != nil {
		return nil, nil, err
	}
	return engine, facade, nil
}
