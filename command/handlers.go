package command

import (
	"context"

	"github.com/forecourt/go-dealers/core"
	gocmd "github.com/goliatone/go-command"
)

type AssignCredentialCommand struct {
	service core.AssignmentService
}

func NewAssignCredentialCommand(service core.AssignmentService) *AssignCredentialCommand {
	return &AssignCredentialCommand{service: service}
}

func (c *AssignCredentialCommand) Execute(ctx context.Context, msg AssignCredentialMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: assignment service is required")
	}
	out, err := c.service.Commit(ctx, msg.State, msg.DealerID, msg.Extras)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RevokeCredentialCommand struct {
	service core.AssignmentService
}

func NewRevokeCredentialCommand(service core.AssignmentService) *RevokeCredentialCommand {
	return &RevokeCredentialCommand{service: service}
}

func (c *RevokeCredentialCommand) Execute(ctx context.Context, msg RevokeCredentialMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: assignment service is required")
	}
	out, err := c.service.Revoke(ctx, msg.DealerID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ApproveSubmissionCommand struct {
	service core.AssignmentService
}

func NewApproveSubmissionCommand(service core.AssignmentService) *ApproveSubmissionCommand {
	return &ApproveSubmissionCommand{service: service}
}

func (c *ApproveSubmissionCommand) Execute(ctx context.Context, msg ApproveSubmissionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: assignment service is required")
	}
	out, err := c.service.ApproveSubmission(ctx, msg.SubmissionID, msg.State, msg.Extras)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ResendInvitationCommand struct {
	service core.AssignmentService
}

func NewResendInvitationCommand(service core.AssignmentService) *ResendInvitationCommand {
	return &ResendInvitationCommand{service: service}
}

func (c *ResendInvitationCommand) Execute(ctx context.Context, msg ResendInvitationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: assignment service is required")
	}
	out, err := c.service.ResendInvitation(ctx, msg.SubmissionID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ExportFeedCommand struct {
	exporter core.FeedExporter
}

func NewExportFeedCommand(exporter core.FeedExporter) *ExportFeedCommand {
	return &ExportFeedCommand{exporter: exporter}
}

func (c *ExportFeedCommand) Execute(ctx context.Context, msg ExportFeedMessage) error {
	if c == nil || c.exporter == nil {
		return commandDependencyError("command: feed exporter is required")
	}
	out, err := c.exporter.ExportFeed(ctx, msg.Feed)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
