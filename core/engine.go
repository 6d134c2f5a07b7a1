package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Engine owns the credential assignment rules: reconciling stored shapes,
// committing edits back as a dual-shape write, revoking access, and the
// invitation side effect on first assignment.
type Engine struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	credentialStore CredentialStore
	dealerStore     DealerStore
	submissionStore SubmissionStore
	vehicleStore    VehicleStore
	invitations     InvitationSender
	now             Clock
}

func NewEngine(cfg Config, options ...Option) (*Engine, error) {
	builder := defaultEngineBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("dealers", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("dealers"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.credentialStore == nil && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			stores, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if stores != nil {
				builder.credentialStore = stores.CredentialStore()
				if builder.dealerStore == nil {
					builder.dealerStore = stores.DealerStore()
				}
				if builder.submissionStore == nil {
					builder.submissionStore = stores.SubmissionStore()
				}
				if builder.vehicleStore == nil {
					builder.vehicleStore = stores.VehicleStore()
				}
			}
		}
	}
	if builder.credentialStore == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: credential store is required"))
	}

	return &Engine{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		credentialStore: builder.credentialStore,
		dealerStore:     builder.dealerStore,
		submissionStore: builder.submissionStore,
		vehicleStore:    builder.vehicleStore,
		invitations:     builder.invitationSender,
		now:             builder.now,
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	return e.config
}

// Commit persists the editable state for a dealer, writing both the legacy
// and enhanced shape so readers of either keep working. On create (no prior
// record) the invitation side effect fires; its failure is reported in the
// result, never rolled into the write outcome.
func (e *Engine) Commit(
	ctx context.Context,
	state EditableCredentialState,
	dealerID string,
	extras CredentialExtras,
) (CommitResult, error) {
	startedAt := e.now()
	dealerID = strings.TrimSpace(dealerID)
	fields := map[string]any{"dealer_id": dealerID}

	result, err := e.commit(ctx, state, dealerID, extras)
	e.observeOperation(ctx, startedAt, "credential_commit", err, fields)
	if err != nil {
		return CommitResult{}, e.mapError(err)
	}
	return result, nil
}

func (e *Engine) commit(
	ctx context.Context,
	state EditableCredentialState,
	dealerID string,
	extras CredentialExtras,
) (CommitResult, error) {
	if e == nil || e.credentialStore == nil {
		return CommitResult{}, fmt.Errorf("core: credential store is required")
	}
	if dealerID == "" {
		return CommitResult{}, validationError("core: dealer id is required")
	}

	validIDs, primary, additional := resolveCommit(state)

	created, err := e.credentialStore.Write(ctx, WriteCredentialInput{
		DealerID:                   dealerID,
		AdvertisementID:            primary,
		AdditionalAdvertisementIDs: additional,
		PrimaryAdvertisementID:     primary,
		AdvertisementIDsParsed:     validIDs,
		IntegrationID:              extras.IntegrationID,
		CompanyName:                extras.CompanyName,
		CompanyLogoURL:             extras.CompanyLogoURL,
	})
	if err != nil {
		return CommitResult{}, err
	}

	result := CommitResult{
		DealerID:   dealerID,
		Created:    created,
		Primary:    primary,
		Additional: additional,
		ValidIDs:   validIDs,
		Invitation: InvitationResult{Outcome: InvitationOutcomeSkipped},
	}
	if created {
		result.Invitation = e.sendInvitation(ctx, dealerID)
	}
	return result, nil
}

// sendInvitation runs after a successful create. Failures do not roll back
// the credential write; the outcome is carried on the result so callers can
// acknowledge "credentials saved, invitation failed" distinctly.
func (e *Engine) sendInvitation(ctx context.Context, dealerID string) InvitationResult {
	if e.invitations == nil {
		return InvitationResult{Outcome: InvitationOutcomeSkipped}
	}

	email := ""
	if e.dealerStore != nil {
		dealer, found, err := e.dealerStore.Get(ctx, dealerID)
		if err == nil && found {
			email = strings.TrimSpace(dealer.Email)
		}
	}
	if email == "" {
		result := InvitationResult{
			Outcome: InvitationOutcomeFailed,
			Warning: "dealer has no registered email",
		}
		e.recordInvitationStatus(ctx, dealerID, InvitationStatusFailed)
		return result
	}

	sent, err := e.invitations.SendInvitation(ctx, email, dealerID)
	if err != nil {
		e.logError(ctx, "invitation send failed", map[string]any{
			"dealer_id": dealerID,
			"error":     err.Error(),
		})
		e.recordInvitationStatus(ctx, dealerID, InvitationStatusFailed)
		return InvitationResult{
			Outcome: InvitationOutcomeFailed,
			Warning: err.Error(),
		}
	}

	switch sent.Outcome {
	case InvitationOutcomeUserExists:
		e.recordInvitationStatus(ctx, dealerID, InvitationStatusUserExists)
	case InvitationOutcomeFailed:
		e.recordInvitationStatus(ctx, dealerID, InvitationStatusFailed)
	default:
		e.recordInvitationStatus(ctx, dealerID, InvitationStatusInvited)
	}
	return sent
}

// recordInvitationStatus advances the stored invitation status through the
// transition map before persisting, so a late or repeated outcome can never
// move an accepted invitation backwards.
func (e *Engine) recordInvitationStatus(ctx context.Context, dealerID string, status InvitationStatus) {
	if e.credentialStore == nil {
		return
	}
	record, found, err := e.credentialStore.Get(ctx, dealerID)
	if err != nil || !found {
		if err != nil {
			e.logError(ctx, "invitation status read failed", map[string]any{
				"dealer_id": dealerID,
				"error":     err.Error(),
			})
		}
		return
	}
	if record.InvitationStatus == "" {
		record.InvitationStatus = InvitationStatusNone
	}
	if err := record.TransitionInvitation(status, e.now()); err != nil {
		e.logError(ctx, "invitation status transition rejected", map[string]any{
			"dealer_id": dealerID,
			"from":      string(record.InvitationStatus),
			"to":        string(status),
			"error":     err.Error(),
		})
		return
	}
	if err := e.credentialStore.UpdateInvitationStatus(ctx, dealerID, record.InvitationStatus); err != nil {
		e.logError(ctx, "invitation status update failed", map[string]any{
			"dealer_id": dealerID,
			"status":    string(status),
			"error":     err.Error(),
		})
	}
}

// Revoke clears every credential field of both shapes. The record is kept
// for audit; a cleared record no longer grants access and revoking it again
// is a no-op success. Revoking a dealer that never had a record fails with
// not-found.
func (e *Engine) Revoke(ctx context.Context, dealerID string) (RevokeResult, error) {
	startedAt := e.now()
	dealerID = strings.TrimSpace(dealerID)
	fields := map[string]any{"dealer_id": dealerID}

	result, err := e.revoke(ctx, dealerID)
	e.observeOperation(ctx, startedAt, "credential_revoke", err, fields)
	if err != nil {
		return RevokeResult{}, e.mapError(err)
	}
	return result, nil
}

func (e *Engine) revoke(ctx context.Context, dealerID string) (RevokeResult, error) {
	if e == nil || e.credentialStore == nil {
		return RevokeResult{}, fmt.Errorf("core: credential store is required")
	}
	if dealerID == "" {
		return RevokeResult{}, validationError("core: dealer id is required")
	}

	record, found, err := e.credentialStore.Get(ctx, dealerID)
	if err != nil {
		return RevokeResult{}, err
	}
	if !found {
		return RevokeResult{}, e.notFound(
			fmt.Sprintf("core: no credential record for dealer %q", dealerID),
			map[string]any{"dealer_id": dealerID},
		)
	}
	if record.Cleared() {
		return RevokeResult{DealerID: dealerID, AlreadyRevoked: true}, nil
	}

	if err := e.credentialStore.Clear(ctx, dealerID); err != nil {
		return RevokeResult{}, err
	}
	return RevokeResult{DealerID: dealerID}, nil
}

// ApproveSubmission marks a pending join submission approved and assigns
// credentials to its dealer through the same commit path.
func (e *Engine) ApproveSubmission(
	ctx context.Context,
	submissionID string,
	state EditableCredentialState,
	extras CredentialExtras,
) (ApproveSubmissionResult, error) {
	startedAt := e.now()
	submissionID = strings.TrimSpace(submissionID)
	fields := map[string]any{"submission_id": submissionID}

	result, err := e.approveSubmission(ctx, submissionID, state, extras)
	e.observeOperation(ctx, startedAt, "submission_approve", err, fields)
	if err != nil {
		return ApproveSubmissionResult{}, e.mapError(err)
	}
	return result, nil
}

func (e *Engine) approveSubmission(
	ctx context.Context,
	submissionID string,
	state EditableCredentialState,
	extras CredentialExtras,
) (ApproveSubmissionResult, error) {
	if e == nil || e.submissionStore == nil {
		return ApproveSubmissionResult{}, fmt.Errorf("core: submission store is required")
	}
	if submissionID == "" {
		return ApproveSubmissionResult{}, validationError("core: submission id is required")
	}

	submission, found, err := e.submissionStore.Get(ctx, submissionID)
	if err != nil {
		return ApproveSubmissionResult{}, err
	}
	if !found {
		return ApproveSubmissionResult{}, e.notFound(
			fmt.Sprintf("core: submission %q not found", submissionID),
			map[string]any{"submission_id": submissionID},
		)
	}
	dealerID := strings.TrimSpace(submission.DealerID)
	if dealerID == "" {
		return ApproveSubmissionResult{}, validationError("core: submission has no dealer")
	}
	if err := submission.TransitionTo(SubmissionStatusApproved, e.now()); err != nil {
		return ApproveSubmissionResult{}, err
	}
	if err := e.submissionStore.UpdateStatus(ctx, submissionID, SubmissionStatusApproved, dealerID); err != nil {
		return ApproveSubmissionResult{}, err
	}

	commit, err := e.commit(ctx, state, dealerID, extras)
	if err != nil {
		return ApproveSubmissionResult{}, err
	}
	return ApproveSubmissionResult{Submission: submission, Commit: commit}, nil
}

// ResendInvitation re-issues the onboarding invitation for a submission.
// An already-accepted invitation is a no-op success.
func (e *Engine) ResendInvitation(ctx context.Context, submissionID string) (InvitationResult, error) {
	startedAt := e.now()
	submissionID = strings.TrimSpace(submissionID)
	fields := map[string]any{"submission_id": submissionID}

	result, err := e.resendInvitation(ctx, submissionID)
	e.observeOperation(ctx, startedAt, "invitation_resend", err, fields)
	if err != nil {
		return InvitationResult{}, e.mapError(err)
	}
	return result, nil
}

func (e *Engine) resendInvitation(ctx context.Context, submissionID string) (InvitationResult, error) {
	if e == nil || e.invitations == nil {
		return InvitationResult{}, fmt.Errorf("core: invitation sender is required")
	}
	if submissionID == "" {
		return InvitationResult{}, validationError("core: submission id is required")
	}

	if e.credentialStore != nil {
		record, found, err := e.credentialStore.GetBySubmission(ctx, submissionID)
		if err != nil {
			return InvitationResult{}, err
		}
		if found && record.InvitationStatus == InvitationStatusAccepted {
			return InvitationResult{Outcome: InvitationOutcomeSkipped}, nil
		}
	}
	return e.invitations.ResendInvitation(ctx, submissionID)
}

// GetCredential returns the reconciled view for one dealer.
func (e *Engine) GetCredential(ctx context.Context, dealerID string) (ReconciledCredential, bool, error) {
	if e == nil || e.credentialStore == nil {
		return ReconciledCredential{}, false, fmt.Errorf("core: credential store is required")
	}
	record, found, err := e.credentialStore.Get(ctx, strings.TrimSpace(dealerID))
	if err != nil {
		return ReconciledCredential{}, false, e.mapError(err)
	}
	if !found {
		return ReconciledCredential{}, false, nil
	}
	return Reconcile(record), true, nil
}

// LoadCredentials bulk-loads reconciled credentials; on a wholesale bulk
// failure it falls back to one concurrent per-item pass.
func (e *Engine) LoadCredentials(ctx context.Context, dealerIDs []string) (map[string]ReconciledCredential, error) {
	if e == nil || e.credentialStore == nil {
		return nil, fmt.Errorf("core: credential store is required")
	}
	records, err := loadMany(ctx, dealerIDs,
		e.credentialStore.GetBulk,
		e.credentialStore.Get,
	)
	if err != nil {
		return nil, e.mapError(err)
	}
	out := make(map[string]ReconciledCredential, len(records))
	for id, record := range records {
		out[id] = Reconcile(record)
	}
	return out, nil
}

func (e *Engine) LoadDealers(ctx context.Context, dealerIDs []string) (map[string]Dealer, error) {
	if e == nil || e.dealerStore == nil {
		return nil, fmt.Errorf("core: dealer store is required")
	}
	out, err := loadMany(ctx, dealerIDs, e.dealerStore.GetBulk, e.dealerStore.Get)
	if err != nil {
		return nil, e.mapError(err)
	}
	return out, nil
}

// LoadSubmissions bulk-loads submissions and derives per-submission vehicle
// counts from the stored records.
func (e *Engine) LoadSubmissions(ctx context.Context, submissionIDs []string) (map[string]SubmissionWithCounts, error) {
	if e == nil || e.submissionStore == nil {
		return nil, fmt.Errorf("core: submission store is required")
	}
	records, err := loadMany(ctx, submissionIDs, e.submissionStore.GetBulk, e.submissionStore.Get)
	if err != nil {
		return nil, e.mapError(err)
	}
	out := make(map[string]SubmissionWithCounts, len(records))
	for id, submission := range records {
		out[id] = SubmissionWithCounts{
			Submission:   submission,
			VehicleCount: submission.VehicleCount,
		}
	}
	return out, nil
}

// ListSubmissionsByStatus backs the admin review queue.
func (e *Engine) ListSubmissionsByStatus(ctx context.Context, status SubmissionStatus) ([]JoinSubmission, error) {
	if e == nil || e.submissionStore == nil {
		return nil, fmt.Errorf("core: submission store is required")
	}
	submissions, err := e.submissionStore.ListByStatus(ctx, status)
	if err != nil {
		return nil, e.mapError(err)
	}
	return submissions, nil
}

// ListDealers exposes the dealer roster to the export subsystem.
func (e *Engine) ListDealers(ctx context.Context) ([]Dealer, error) {
	if e == nil || e.dealerStore == nil {
		return nil, fmt.Errorf("core: dealer store is required")
	}
	dealers, err := e.dealerStore.List(ctx)
	if err != nil {
		return nil, e.mapError(err)
	}
	return dealers, nil
}

// GetVehicle returns one vehicle with its preparation checklist rolled up
// to a completion percentage.
func (e *Engine) GetVehicle(ctx context.Context, vehicleID string) (VehicleDetail, bool, error) {
	if e == nil || e.vehicleStore == nil {
		return VehicleDetail{}, false, fmt.Errorf("core: vehicle store is required")
	}
	vehicle, found, err := e.vehicleStore.Get(ctx, strings.TrimSpace(vehicleID))
	if err != nil {
		return VehicleDetail{}, false, e.mapError(err)
	}
	if !found {
		return VehicleDetail{}, false, nil
	}
	return VehicleDetail{
		Vehicle:             vehicle,
		ChecklistCompletion: vehicle.ChecklistCompletion(),
	}, true, nil
}

// ListForecourtVehicles exposes forecourt stock to the export subsystem.
// Only forecourt-status vehicles ever reach external feeds.
func (e *Engine) ListForecourtVehicles(ctx context.Context, dealerID string) ([]Vehicle, error) {
	if e == nil || e.vehicleStore == nil {
		return nil, fmt.Errorf("core: vehicle store is required")
	}
	vehicles, err := e.vehicleStore.ListByDealerAndStatus(ctx, strings.TrimSpace(dealerID), VehicleStatusForecourt)
	if err != nil {
		return nil, e.mapError(err)
	}
	return vehicles, nil
}

// notFound builds the not-found envelope through the injected error
// factory so embedders can swap in their own error construction.
func (e *Engine) notFound(message string, metadata map[string]any) error {
	factory := e.errorFactory
	if factory == nil {
		factory = goerrors.New
	}
	wrapped := factory(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(DealerErrorNotFound)
	if len(metadata) > 0 {
		return wrapped.WithMetadata(metadata)
	}
	return wrapped
}

func (e *Engine) mapError(err error) error {
	if err == nil {
		return nil
	}
	if e == nil || e.errorMapper == nil {
		return err
	}
	mapped := e.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
