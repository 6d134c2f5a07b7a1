package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[AssignCredentialMessage]  = (*AssignCredentialCommand)(nil)
	_ gocmd.Commander[RevokeCredentialMessage]  = (*RevokeCredentialCommand)(nil)
	_ gocmd.Commander[ApproveSubmissionMessage] = (*ApproveSubmissionCommand)(nil)
	_ gocmd.Commander[ResendInvitationMessage]  = (*ResendInvitationCommand)(nil)
	_ gocmd.Commander[ExportFeedMessage]        = (*ExportFeedCommand)(nil)
)
