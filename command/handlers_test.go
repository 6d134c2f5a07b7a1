package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/forecourt/go-dealers/core"
	gocmd "github.com/goliatone/go-command"
)

type stubAssignmentService struct {
	commitFn            func(ctx context.Context, state core.EditableCredentialState, dealerID string, extras core.CredentialExtras) (core.CommitResult, error)
	revokeFn            func(ctx context.Context, dealerID string) (core.RevokeResult, error)
	approveSubmissionFn func(ctx context.Context, submissionID string, state core.EditableCredentialState, extras core.CredentialExtras) (core.ApproveSubmissionResult, error)
	resendInvitationFn  func(ctx context.Context, submissionID string) (core.InvitationResult, error)
}

func (s stubAssignmentService) Commit(ctx context.Context, state core.EditableCredentialState, dealerID string, extras core.CredentialExtras) (core.CommitResult, error) {
	if s.commitFn == nil {
		return core.CommitResult{}, fmt.Errorf("unexpected Commit call")
	}
	return s.commitFn(ctx, state, dealerID, extras)
}

func (s stubAssignmentService) Revoke(ctx context.Context, dealerID string) (core.RevokeResult, error) {
	if s.revokeFn == nil {
		return core.RevokeResult{}, fmt.Errorf("unexpected Revoke call")
	}
	return s.revokeFn(ctx, dealerID)
}

func (s stubAssignmentService) ApproveSubmission(ctx context.Context, submissionID string, state core.EditableCredentialState, extras core.CredentialExtras) (core.ApproveSubmissionResult, error) {
	if s.approveSubmissionFn == nil {
		return core.ApproveSubmissionResult{}, fmt.Errorf("unexpected ApproveSubmission call")
	}
	return s.approveSubmissionFn(ctx, submissionID, state, extras)
}

func (s stubAssignmentService) ResendInvitation(ctx context.Context, submissionID string) (core.InvitationResult, error) {
	if s.resendInvitationFn == nil {
		return core.InvitationResult{}, fmt.Errorf("unexpected ResendInvitation call")
	}
	return s.resendInvitationFn(ctx, submissionID)
}

type stubFeedExporter struct {
	exportFn func(ctx context.Context, feed string) (core.FeedExportResult, error)
}

func (s stubFeedExporter) ExportFeed(ctx context.Context, feed string) (core.FeedExportResult, error) {
	if s.exportFn == nil {
		return core.FeedExportResult{}, fmt.Errorf("unexpected ExportFeed call")
	}
	return s.exportFn(ctx, feed)
}

func TestAssignCredentialCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.CommitResult{DealerID: "dlr_1", Created: true, Primary: "A"}
	called := false

	svc := stubAssignmentService{
		commitFn: func(_ context.Context, state core.EditableCredentialState, dealerID string, extras core.CredentialExtras) (core.CommitResult, error) {
			called = true
			if dealerID != "dlr_1" {
				t.Fatalf("expected dealer dlr_1, got %q", dealerID)
			}
			if len(state.IDs) != 1 || state.IDs[0] != "A" {
				t.Fatalf("unexpected state: %#v", state)
			}
			if extras.IntegrationID != "int_1" {
				t.Fatalf("unexpected extras: %#v", extras)
			}
			return expected, nil
		},
	}

	cmd := NewAssignCredentialCommand(svc)
	collector := gocmd.NewResult[core.CommitResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, AssignCredentialMessage{
		DealerID: "dlr_1",
		State:    core.EditableCredentialState{IDs: []string{"A"}, PrimaryID: "A"},
		Extras:   core.CredentialExtras{IntegrationID: "int_1"},
	})
	if err != nil {
		t.Fatalf("execute assign: %v", err)
	}
	if !called {
		t.Fatalf("expected commit invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.DealerID != expected.DealerID || !result.Created {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestMutationCommands_DelegateToService(t *testing.T) {
	t.Run("revoke", func(t *testing.T) {
		called := false
		svc := stubAssignmentService{
			revokeFn: func(_ context.Context, dealerID string) (core.RevokeResult, error) {
				called = true
				if dealerID != "dlr_1" {
					t.Fatalf("unexpected revoke payload: %q", dealerID)
				}
				return core.RevokeResult{DealerID: dealerID}, nil
			},
		}
		cmd := NewRevokeCredentialCommand(svc)
		if err := cmd.Execute(context.Background(), RevokeCredentialMessage{DealerID: "dlr_1"}); err != nil {
			t.Fatalf("execute revoke: %v", err)
		}
		if !called {
			t.Fatalf("expected revoke invocation")
		}
	})

	t.Run("approve submission", func(t *testing.T) {
		expected := core.ApproveSubmissionResult{
			Submission: core.JoinSubmission{ID: "sub_1", Status: core.SubmissionStatusApproved},
			Commit:     core.CommitResult{DealerID: "dlr_1"},
		}
		svc := stubAssignmentService{
			approveSubmissionFn: func(_ context.Context, submissionID string, _ core.EditableCredentialState, _ core.CredentialExtras) (core.ApproveSubmissionResult, error) {
				if submissionID != "sub_1" {
					t.Fatalf("unexpected submission id %q", submissionID)
				}
				return expected, nil
			},
		}
		cmd := NewApproveSubmissionCommand(svc)
		collector := gocmd.NewResult[core.ApproveSubmissionResult]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := cmd.Execute(ctx, ApproveSubmissionMessage{SubmissionID: "sub_1"}); err != nil {
			t.Fatalf("execute approve: %v", err)
		}
		result, ok := collector.Load()
		if !ok {
			t.Fatalf("expected result to be stored")
		}
		if result.Submission.Status != core.SubmissionStatusApproved {
			t.Fatalf("unexpected result: %#v", result)
		}
	})

	t.Run("resend invitation", func(t *testing.T) {
		svc := stubAssignmentService{
			resendInvitationFn: func(_ context.Context, submissionID string) (core.InvitationResult, error) {
				if submissionID != "sub_1" {
					t.Fatalf("unexpected submission id %q", submissionID)
				}
				return core.InvitationResult{Outcome: core.InvitationOutcomeInvited}, nil
			},
		}
		cmd := NewResendInvitationCommand(svc)
		collector := gocmd.NewResult[core.InvitationResult]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := cmd.Execute(ctx, ResendInvitationMessage{SubmissionID: "sub_1"}); err != nil {
			t.Fatalf("execute resend: %v", err)
		}
		result, ok := collector.Load()
		if !ok {
			t.Fatalf("expected result to be stored")
		}
		if result.Outcome != core.InvitationOutcomeInvited {
			t.Fatalf("unexpected result: %#v", result)
		}
	})

	t.Run("export feed", func(t *testing.T) {
		exporter := stubFeedExporter{
			exportFn: func(_ context.Context, feed string) (core.FeedExportResult, error) {
				if feed != FeedCF247 {
					t.Fatalf("unexpected feed %q", feed)
				}
				return core.FeedExportResult{Feed: feed, DealerCount: 2}, nil
			},
		}
		cmd := NewExportFeedCommand(exporter)
		collector := gocmd.NewResult[core.FeedExportResult]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := cmd.Execute(ctx, ExportFeedMessage{Feed: FeedCF247}); err != nil {
			t.Fatalf("execute export: %v", err)
		}
		result, ok := collector.Load()
		if !ok {
			t.Fatalf("expected result to be stored")
		}
		if result.DealerCount != 2 {
			t.Fatalf("unexpected result: %#v", result)
		}
	})
}

func TestCommandMessages_Validate(t *testing.T) {
	if err := (AssignCredentialMessage{}).Validate(); err == nil {
		t.Fatalf("expected dealer id validation error")
	}
	if err := (RevokeCredentialMessage{DealerID: " "}).Validate(); err == nil {
		t.Fatalf("expected dealer id validation error")
	}
	if err := (ApproveSubmissionMessage{}).Validate(); err == nil {
		t.Fatalf("expected submission id validation error")
	}
	if err := (ResendInvitationMessage{}).Validate(); err == nil {
		t.Fatalf("expected submission id validation error")
	}
	if err := (ExportFeedMessage{Feed: "unknown"}).Validate(); err == nil {
		t.Fatalf("expected unknown feed validation error")
	}
	if err := (ExportFeedMessage{Feed: "CF247"}).Validate(); err != nil {
		t.Fatalf("expected case-insensitive feed name, got %v", err)
	}
}

func TestCommands_RequireService(t *testing.T) {
	if err := (&AssignCredentialCommand{}).Execute(context.Background(), AssignCredentialMessage{DealerID: "d"}); err == nil {
		t.Fatalf("expected dependency error")
	}
	if err := (&ExportFeedCommand{}).Execute(context.Background(), ExportFeedMessage{Feed: FeedAACars}); err == nil {
		t.Fatalf("expected dependency error")
	}
}
