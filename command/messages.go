package command

import (
	"fmt"
	"strings"

	"github.com/forecourt/go-dealers/core"
)

const (
	TypeAssignCredential  = "dealers.command.credential.assign"
	TypeRevokeCredential  = "dealers.command.credential.revoke"
	TypeApproveSubmission = "dealers.command.submission.approve"
	TypeResendInvitation  = "dealers.command.invitation.resend"
	TypeExportFeed        = "dealers.command.feed.export"
)

type AssignCredentialMessage struct {
	DealerID string
	State    core.EditableCredentialState
	Extras   core.CredentialExtras
}

func (AssignCredentialMessage) Type() string { return TypeAssignCredential }

func (m AssignCredentialMessage) Validate() error {
	if strings.TrimSpace(m.DealerID) == "" {
		return fmt.Errorf("command: dealer id is required")
	}
	return nil
}

type RevokeCredentialMessage struct {
	DealerID string
}

func (RevokeCredentialMessage) Type() string { return TypeRevokeCredential }

func (m RevokeCredentialMessage) Validate() error {
	if strings.TrimSpace(m.DealerID) == "" {
		return fmt.Errorf("command: dealer id is required")
	}
	return nil
}

type ApproveSubmissionMessage struct {
	SubmissionID string
	State        core.EditableCredentialState
	Extras       core.CredentialExtras
}

func (ApproveSubmissionMessage) Type() string { return TypeApproveSubmission }

func (m ApproveSubmissionMessage) Validate() error {
	if strings.TrimSpace(m.SubmissionID) == "" {
		return fmt.Errorf("command: submission id is required")
	}
	return nil
}

type ResendInvitationMessage struct {
	SubmissionID string
}

func (ResendInvitationMessage) Type() string { return TypeResendInvitation }

func (m ResendInvitationMessage) Validate() error {
	if strings.TrimSpace(m.SubmissionID) == "" {
		return fmt.Errorf("command: submission id is required")
	}
	return nil
}

type ExportFeedMessage struct {
	Feed string
}

func (ExportFeedMessage) Type() string { return TypeExportFeed }

func (m ExportFeedMessage) Validate() error {
	feed := strings.TrimSpace(strings.ToLower(m.Feed))
	if feed == "" {
		return fmt.Errorf("command: feed name is required")
	}
	if feed != FeedCF247 && feed != FeedAACars {
		return fmt.Errorf("command: unknown feed %q", m.Feed)
	}
	return nil
}

const (
	FeedCF247  = "cf247"
	FeedAACars = "aacars"
)
