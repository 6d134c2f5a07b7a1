package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forecourt/go-dealers/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestSender_SendInvitation_Invited(t *testing.T) {
	var gotPath string
	var gotAuthorization string
	var gotRequest map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthorization = strings.TrimSpace(r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":  "inv_1",
			"url": "https://accounts.example.com/invite/inv_1",
		})
	}))
	defer server.Close()

	sender, err := NewSender(Config{BaseURL: server.URL, APIKey: "key_1"})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	result, err := sender.SendInvitation(context.Background(), "owner@example.com", "dlr_1")
	if err != nil {
		t.Fatalf("send invitation: %v", err)
	}
	if result.Outcome != core.InvitationOutcomeInvited {
		t.Fatalf("expected invited outcome, got %q", result.Outcome)
	}
	if result.InvitationID != "inv_1" {
		t.Fatalf("expected invitation id, got %q", result.InvitationID)
	}
	if result.InvitationURL == "" {
		t.Fatalf("expected invitation url")
	}
	if gotPath != "/invitations" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuthorization != "Bearer key_1" {
		t.Fatalf("unexpected authorization header %q", gotAuthorization)
	}
	if gotRequest["email"] != "owner@example.com" || gotRequest["dealer_id"] != "dlr_1" {
		t.Fatalf("unexpected request payload: %#v", gotRequest)
	}
}

func TestSender_SendInvitation_UserExistsConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	sender, err := NewSender(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	result, err := sender.SendInvitation(context.Background(), "owner@example.com", "dlr_1")
	if err != nil {
		t.Fatalf("expected conflict to be a success outcome, got %v", err)
	}
	if result.Outcome != core.InvitationOutcomeUserExists {
		t.Fatalf("expected user_exists outcome, got %q", result.Outcome)
	}
}

func TestSender_SendInvitation_UserExistsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "inv_2",
			"user_exists": true,
		})
	}))
	defer server.Close()

	sender, err := NewSender(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	result, err := sender.SendInvitation(context.Background(), "owner@example.com", "dlr_1")
	if err != nil {
		t.Fatalf("send invitation: %v", err)
	}
	if result.Outcome != core.InvitationOutcomeUserExists {
		t.Fatalf("expected user_exists outcome, got %q", result.Outcome)
	}
}

func TestSender_SendInvitation_ProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender, err := NewSender(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	_, err = sender.SendInvitation(context.Background(), "owner@example.com", "dlr_1")
	if err == nil {
		t.Fatalf("expected delivery error")
	}
	if !errors.Is(err, ErrInvitationDelivery) {
		t.Fatalf("expected ErrInvitationDelivery, got %v", err)
	}

	var deliveryErr *InvitationDeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("expected InvitationDeliveryError, got %T", err)
	}
	mapped := deliveryErr.ToDealerError()
	if mapped.TextCode != core.DealerErrorInvitationFailed {
		t.Fatalf("expected %s text code, got %s", core.DealerErrorInvitationFailed, mapped.TextCode)
	}
	if mapped.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %s", mapped.Category)
	}
}

func TestSender_ResendInvitation_EscapesSubmissionID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "inv_3"})
	}))
	defer server.Close()

	sender, err := NewSender(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}

	result, err := sender.ResendInvitation(context.Background(), "sub/one")
	if err != nil {
		t.Fatalf("resend invitation: %v", err)
	}
	if result.Outcome != core.InvitationOutcomeInvited {
		t.Fatalf("expected invited outcome, got %q", result.Outcome)
	}
	if gotPath != "/invitations/sub%2Fone/resend" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestSender_Validation(t *testing.T) {
	if _, err := NewSender(Config{}); err == nil {
		t.Fatalf("expected error for missing base url")
	}

	sender, err := NewSender(Config{BaseURL: "https://accounts.example.com"})
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}
	if _, err := sender.SendInvitation(context.Background(), "", "dlr_1"); err == nil {
		t.Fatalf("expected error for missing email")
	}
	if _, err := sender.SendInvitation(context.Background(), "owner@example.com", ""); err == nil {
		t.Fatalf("expected error for missing dealer id")
	}
	if _, err := sender.ResendInvitation(context.Background(), " "); err == nil {
		t.Fatalf("expected error for missing submission id")
	}
}
