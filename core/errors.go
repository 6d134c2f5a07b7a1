package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	DealerErrorValidation       = "DEALER_VALIDATION"
	DealerErrorBadInput         = "DEALER_BAD_INPUT"
	DealerErrorNotFound         = "DEALER_NOT_FOUND"
	DealerErrorInvitationFailed = "DEALER_INVITATION_FAILED"
	DealerErrorTransport        = "DEALER_TRANSPORT"
	DealerErrorInternal         = "DEALER_INTERNAL_ERROR"
)

var (
	// ErrValidation covers invalid edits: removing the last slot, setting
	// the primary to an absent value. Checked before any write reaches the
	// persistence layer.
	ErrValidation = errors.New("core: validation failed")
	// ErrNotFound covers operations against a dealer, credential, or
	// submission that does not exist.
	ErrNotFound = errors.New("core: not found")
	// ErrTransport marks a wholesale persistence failure; the bulk read
	// path uses it to decide whether the per-item fallback applies.
	ErrTransport = errors.New("core: transport failure")
)

func validationError(message string) error {
	return goerrors.Wrap(ErrValidation, goerrors.CategoryValidation, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(DealerErrorValidation)
}

func dealerErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureDealerErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrValidation):
		return newDealerError(err.Error(), goerrors.CategoryValidation, DealerErrorValidation)
	case errors.Is(err, ErrNotFound):
		return newDealerError(err.Error(), goerrors.CategoryNotFound, DealerErrorNotFound)
	case errors.Is(err, ErrTransport):
		return newDealerError(err.Error(), goerrors.CategoryExternal, DealerErrorTransport)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "not found"):
		return newDealerError(err.Error(), goerrors.CategoryNotFound, DealerErrorNotFound)
	case strings.Contains(msg, "invitation"):
		return newDealerError(err.Error(), goerrors.CategoryExternal, DealerErrorInvitationFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newDealerError(err.Error(), goerrors.CategoryBadInput, DealerErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureDealerErrorEnvelope(mapped)
}

func newDealerError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureDealerErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureDealerErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = dealerHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultDealerTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultDealerTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryValidation:
		return DealerErrorValidation
	case goerrors.CategoryBadInput:
		return DealerErrorBadInput
	case goerrors.CategoryNotFound:
		return DealerErrorNotFound
	case goerrors.CategoryExternal:
		return DealerErrorTransport
	default:
		return DealerErrorInternal
	}
}

func dealerHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
