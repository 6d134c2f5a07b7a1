package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/forecourt/go-dealers/core"
	goerrors "github.com/goliatone/go-errors"
)

const (
	defaultRequestTimeout    = 10 * time.Second
	maxInvitationReplyBytes  = 1 << 20 // 1 MiB
	invitationsPath          = "/invitations"
	invitationResendPathTmpl = "/invitations/%s/resend"
)

var ErrInvitationDelivery = errors.New("identity: invitation delivery failed")

type InvitationDeliveryError struct {
	Cause error
}

func (e *InvitationDeliveryError) Error() string {
	if e == nil || e.Cause == nil {
		return ErrInvitationDelivery.Error()
	}
	return ErrInvitationDelivery.Error() + ": " + e.Cause.Error()
}

func (e *InvitationDeliveryError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return ErrInvitationDelivery
	}
	return errors.Join(ErrInvitationDelivery, e.Cause)
}

func (e *InvitationDeliveryError) ToDealerError() *goerrors.Error {
	message := ErrInvitationDelivery.Error()
	if e != nil && e.Cause != nil {
		message = e.Error()
	}
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.DealerErrorInvitationFailed)
}

func deliveryFailed(cause error) error {
	return &InvitationDeliveryError{Cause: cause}
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	HTTPClient     HTTPDoer
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
}

// Sender invites dealership owners into the identity provider that fronts the
// advertising platform. Outcomes map onto core.InvitationOutcome; a 409 from
// the provider means the account already exists and is not an error.
type Sender struct {
	httpClient     HTTPDoer
	baseURL        string
	apiKey         string
	requestTimeout time.Duration
}

func NewSender(cfg Config) (*Sender, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("identity: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("identity: invalid base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Sender{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		requestTimeout: requestTimeout,
	}, nil
}

type invitationRequest struct {
	Email    string `json:"email"`
	DealerID string `json:"dealer_id"`
}

type invitationReply struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	UserExists bool   `json:"user_exists"`
}

func (s *Sender) SendInvitation(ctx context.Context, email string, dealerID string) (core.InvitationResult, error) {
	if s == nil || s.httpClient == nil {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: sender is not configured"))
	}
	email = strings.TrimSpace(email)
	dealerID = strings.TrimSpace(dealerID)
	if email == "" {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: email is required"))
	}
	if dealerID == "" {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: dealer id is required"))
	}

	payload, err := json.Marshal(invitationRequest{Email: email, DealerID: dealerID})
	if err != nil {
		return core.InvitationResult{}, deliveryFailed(err)
	}
	return s.post(ctx, s.baseURL+invitationsPath, payload)
}

func (s *Sender) ResendInvitation(ctx context.Context, submissionID string) (core.InvitationResult, error) {
	if s == nil || s.httpClient == nil {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: sender is not configured"))
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: submission id is required"))
	}
	endpoint := s.baseURL + fmt.Sprintf(invitationResendPathTmpl, url.PathEscape(submissionID))
	return s.post(ctx, endpoint, nil)
}

func (s *Sender) post(ctx context.Context, endpoint string, payload []byte) (core.InvitationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestCtx := ctx
	cancel := func() {}
	if s.requestTimeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, s.requestTimeout)
	}
	defer cancel()

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, body)
	if err != nil {
		return core.InvitationResult{}, deliveryFailed(err)
	}
	req.Header.Set("Accept", "application/json")
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return core.InvitationResult{}, deliveryFailed(err)
	}
	defer res.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(res.Body, maxInvitationReplyBytes+1))
	if readErr != nil {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: read invitation response: %w", readErr))
	}
	if int64(len(raw)) > maxInvitationReplyBytes {
		return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: invitation response exceeds %d bytes", maxInvitationReplyBytes))
	}

	// The provider answers 409 when the invited email already has an
	// account; callers treat that as a terminal success outcome.
	if res.StatusCode == http.StatusConflict {
		return core.InvitationResult{Outcome: core.InvitationOutcomeUserExists}, nil
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return core.InvitationResult{}, deliveryFailed(
			fmt.Errorf("identity: invitation endpoint returned status %d", res.StatusCode),
		)
	}

	var reply invitationReply
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &reply); err != nil {
			return core.InvitationResult{}, deliveryFailed(fmt.Errorf("identity: decode invitation response: %w", err))
		}
	}
	if reply.UserExists {
		return core.InvitationResult{
			Outcome:      core.InvitationOutcomeUserExists,
			InvitationID: strings.TrimSpace(reply.ID),
		}, nil
	}
	return core.InvitationResult{
		Outcome:       core.InvitationOutcomeInvited,
		InvitationID:  strings.TrimSpace(reply.ID),
		InvitationURL: strings.TrimSpace(reply.URL),
	}, nil
}

var _ core.InvitationSender = (*Sender)(nil)
