package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// CredentialExtras carries the optional fields committed alongside the
// advertisement ids. Empty strings clear the stored value.
type CredentialExtras struct {
	IntegrationID  string
	CompanyName    string
	CompanyLogoURL string
}

// WriteCredentialInput is the upsert payload for a dealer credential. Both
// shapes are always populated together so readers of either keep working.
type WriteCredentialInput struct {
	DealerID string

	AdvertisementID            string
	AdditionalAdvertisementIDs []string
	PrimaryAdvertisementID     string
	AdvertisementIDsParsed     []string

	IntegrationID  string
	CompanyName    string
	CompanyLogoURL string
}

type InvitationOutcome string

const (
	InvitationOutcomeSkipped    InvitationOutcome = "skipped"
	InvitationOutcomeInvited    InvitationOutcome = "invited"
	InvitationOutcomeUserExists InvitationOutcome = "user_exists"
	InvitationOutcomeFailed     InvitationOutcome = "failed"
)

type InvitationResult struct {
	Outcome       InvitationOutcome
	InvitationID  string
	InvitationURL string
	Warning       string
}

// CommitResult reports the two halves of a commit separately: the credential
// write and the invitation side effect. Callers must render both; a failed
// invitation never implies a failed write.
type CommitResult struct {
	DealerID   string
	Created    bool
	Primary    string
	Additional []string
	ValidIDs   []string
	Invitation InvitationResult
}

type RevokeResult struct {
	DealerID string
	// AlreadyRevoked is true when the record existed but carried no
	// advertisement ids, making the revoke a no-op.
	AlreadyRevoked bool
}

type ApproveSubmissionResult struct {
	Submission JoinSubmission
	Commit     CommitResult
}

type SubmissionWithCounts struct {
	Submission   JoinSubmission
	VehicleCount int
}

// VehicleDetail is the admin read view of one vehicle: the stored record
// plus the preparation checklist rolled up to a completion percentage.
type VehicleDetail struct {
	Vehicle             Vehicle
	ChecklistCompletion int
}

type CredentialStore interface {
	Get(ctx context.Context, dealerID string) (DealerCredential, bool, error)
	GetBulk(ctx context.Context, dealerIDs []string) (map[string]DealerCredential, error)
	GetBySubmission(ctx context.Context, submissionID string) (DealerCredential, bool, error)
	Write(ctx context.Context, in WriteCredentialInput) (created bool, err error)
	Clear(ctx context.Context, dealerID string) error
	UpdateInvitationStatus(ctx context.Context, dealerID string, status InvitationStatus) error
}

type DealerStore interface {
	Get(ctx context.Context, dealerID string) (Dealer, bool, error)
	GetBulk(ctx context.Context, dealerIDs []string) (map[string]Dealer, error)
	List(ctx context.Context) ([]Dealer, error)
}

type SubmissionStore interface {
	Get(ctx context.Context, submissionID string) (JoinSubmission, bool, error)
	GetBulk(ctx context.Context, submissionIDs []string) (map[string]JoinSubmission, error)
	ListByStatus(ctx context.Context, status SubmissionStatus) ([]JoinSubmission, error)
	UpdateStatus(ctx context.Context, submissionID string, status SubmissionStatus, dealerID string) error
}

type VehicleStore interface {
	Get(ctx context.Context, vehicleID string) (Vehicle, bool, error)
	ListByDealer(ctx context.Context, dealerID string) ([]Vehicle, error)
	ListByDealerAndStatus(ctx context.Context, dealerID string, status VehicleStatus) ([]Vehicle, error)
}

type StoreProvider interface {
	CredentialStore() CredentialStore
	DealerStore() DealerStore
	SubmissionStore() SubmissionStore
	VehicleStore() VehicleStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

// InvitationSender is the identity-provider collaborator. Implementations
// talk to the external identity service; outcomes map onto
// InvitationStatus.
type InvitationSender interface {
	SendInvitation(ctx context.Context, email string, dealerID string) (InvitationResult, error)
	ResendInvitation(ctx context.Context, submissionID string) (InvitationResult, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// AssignmentService is the mutating surface exposed to the command layer.
type AssignmentService interface {
	Commit(ctx context.Context, state EditableCredentialState, dealerID string, extras CredentialExtras) (CommitResult, error)
	Revoke(ctx context.Context, dealerID string) (RevokeResult, error)
	ApproveSubmission(ctx context.Context, submissionID string, state EditableCredentialState, extras CredentialExtras) (ApproveSubmissionResult, error)
	ResendInvitation(ctx context.Context, submissionID string) (InvitationResult, error)
}

// CredentialReader is the read surface exposed to the query layer.
type CredentialReader interface {
	GetCredential(ctx context.Context, dealerID string) (ReconciledCredential, bool, error)
	LoadCredentials(ctx context.Context, dealerIDs []string) (map[string]ReconciledCredential, error)
	LoadDealers(ctx context.Context, dealerIDs []string) (map[string]Dealer, error)
	LoadSubmissions(ctx context.Context, submissionIDs []string) (map[string]SubmissionWithCounts, error)
}

// FeedSource is the read surface the export subsystem consumes. It never
// calls back into mutation operations.
type FeedSource interface {
	ListDealers(ctx context.Context) ([]Dealer, error)
	GetCredential(ctx context.Context, dealerID string) (ReconciledCredential, bool, error)
	ListForecourtVehicles(ctx context.Context, dealerID string) ([]Vehicle, error)
}

// FeedExportResult is the outcome of building one partner feed archive.
// SkippedDealers lists dealers left out for missing a primary advertisement
// id; skipping is logged, never fatal.
type FeedExportResult struct {
	Feed           string
	FileName       string
	DealerCount    int
	VehicleCount   int
	SkippedDealers []string
	Archive        []byte
}

// FeedExporter builds partner feed archives from the reconciled dealer data.
type FeedExporter interface {
	ExportFeed(ctx context.Context, feed string) (FeedExportResult, error)
}

// JobExecutionMessage is the queue-agnostic description of a scheduled
// unit of work (a feed export run, an invitation resend).
type JobExecutionMessage struct {
	JobID          string
	ScriptPath     string
	Parameters     map[string]any
	IdempotencyKey string
	DedupPolicy    string
}

type JobNackOptions struct {
	Delay      time.Duration
	Requeue    bool
	DeadLetter bool
	Reason     string
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, msg *JobExecutionMessage) error
}

type JobDelivery interface {
	Message() *JobExecutionMessage
	Ack(ctx context.Context) error
	Nack(ctx context.Context, opts JobNackOptions) error
}

type JobDequeuer interface {
	Dequeue(ctx context.Context) (JobDelivery, error)
}

type JobWorkerHook interface {
	OnStart(ctx context.Context, event JobWorkerEvent)
	OnSuccess(ctx context.Context, event JobWorkerEvent)
	OnFailure(ctx context.Context, event JobWorkerEvent)
	OnRetry(ctx context.Context, event JobWorkerEvent)
}

type JobWorkerEvent struct {
	Message   *JobExecutionMessage
	Attempt   int
	Delay     time.Duration
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Clock narrows time injection for deterministic tests.
type Clock func() time.Time
