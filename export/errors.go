package export

import (
	"net/http"

	"github.com/forecourt/go-dealers/core"
	goerrors "github.com/goliatone/go-errors"
)

func exportValidationError(message string) error {
	return goerrors.New("export: "+message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.DealerErrorValidation)
}
