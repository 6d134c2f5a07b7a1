package gocommand

import (
	"context"
	"errors"
	"testing"

	"github.com/forecourt/go-dealers/core"

	"github.com/goliatone/go-command"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
)

type okMessage struct{}

func (okMessage) Type() string { return "dealers.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "dealers.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

type dispatchMessage struct {
	ID string
}

func (dispatchMessage) Type() string { return "dealers.command.test" }

type queueMessage struct{}

func (queueMessage) Type() string { return "dealers.command.queue" }

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(okMessage{}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := ValidateMessageContract(invalidMessage{}); err == nil {
		t.Fatalf("expected empty type to fail contract validation")
	}
	if err := ValidateMessageContract(failingMessage{}); err == nil {
		t.Fatalf("expected Validate() failure to bubble")
	}
}

func TestRegistryAndDispatchWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	executed := 0
	customResolverCalled := 0

	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error {
		executed++
		return nil
	})

	if _, err := RegisterAndSubscribe(adapter, cmd); err != nil {
		t.Fatalf("register and subscribe: %v", err)
	}
	if err := adapter.AddResolver("custom", func(any, command.CommandMeta, *command.Registry) error {
		customResolverCalled++
		return nil
	}); err != nil {
		t.Fatalf("add resolver: %v", err)
	}
	if !adapter.HasResolver("custom") {
		t.Fatalf("expected custom resolver to be registered")
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if customResolverCalled == 0 {
		t.Fatalf("expected resolver hook to run during initialization")
	}

	if err := Dispatch(context.Background(), dispatchMessage{ID: "m1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected command execution count=1, got %d", executed)
	}
}

func TestQueueResolverHookWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	queueRegistry := jobqueuecommand.NewRegistry()

	cmd := command.CommandFunc[queueMessage](func(context.Context, queueMessage) error { return nil })

	if err := adapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	if err := adapter.RegisterCommand(cmd); err != nil {
		t.Fatalf("register command: %v", err)
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if _, ok := queueRegistry.Get("dealers.command.queue"); !ok {
		t.Fatalf("expected command to be mirrored into queue registry")
	}
}

type registrationService struct{}

func (registrationService) Commit(context.Context, core.EditableCredentialState, string, core.CredentialExtras) (core.CommitResult, error) {
	return core.CommitResult{}, nil
}

func (registrationService) Revoke(context.Context, string) (core.RevokeResult, error) {
	return core.RevokeResult{}, nil
}

func (registrationService) ApproveSubmission(context.Context, string, core.EditableCredentialState, core.CredentialExtras) (core.ApproveSubmissionResult, error) {
	return core.ApproveSubmissionResult{}, nil
}

func (registrationService) ResendInvitation(context.Context, string) (core.InvitationResult, error) {
	return core.InvitationResult{}, nil
}

type registrationReader struct{}

func (registrationReader) GetCredential(context.Context, string) (core.ReconciledCredential, bool, error) {
	return core.ReconciledCredential{}, false, nil
}

func (registrationReader) LoadCredentials(context.Context, []string) (map[string]core.ReconciledCredential, error) {
	return nil, nil
}

func (registrationReader) LoadDealers(context.Context, []string) (map[string]core.Dealer, error) {
	return nil, nil
}

func (registrationReader) LoadSubmissions(context.Context, []string) (map[string]core.SubmissionWithCounts, error) {
	return nil, nil
}

func TestRegisterDealerHandlers(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())

	if err := RegisterDealerHandlers(adapter, registrationService{}, registrationReader{}, nil, nil); err != nil {
		t.Fatalf("register handlers: %v", err)
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}

	if err := RegisterDealerHandlers(adapter, nil, registrationReader{}, nil, nil); err == nil {
		t.Fatalf("expected missing service error")
	}
	if err := RegisterDealerHandlers(adapter, registrationService{}, nil, nil, nil); err == nil {
		t.Fatalf("expected missing reader error")
	}
}
