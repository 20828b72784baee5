package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	domainerrors "github.com/payportal/payportal/internal/domain/errors"
)

var validate = validator.New()

type errorMapping struct {
	status int
	code   string
}

// errorMappings translates domain sentinels to HTTP status codes. Anything
// unmapped becomes a 500 with a generic message so internals never leak.
var errorMappings = map[error]errorMapping{
	domainerrors.ErrInvalidCredentials:       {http.StatusUnauthorized, "invalid_credentials"},
	domainerrors.ErrUnauthorized:             {http.StatusUnauthorized, "unauthorized"},
	domainerrors.ErrTokenRevoked:             {http.StatusUnauthorized, "token_revoked"},
	domainerrors.ErrForbidden:                {http.StatusForbidden, "forbidden"},
	domainerrors.ErrUserNotFound:             {http.StatusNotFound, "user_not_found"},
	domainerrors.ErrPaymentNotFound:          {http.StatusNotFound, "payment_not_found"},
	domainerrors.ErrDuplicateAccount:         {http.StatusConflict, "duplicate_account"},
	domainerrors.ErrDuplicateIDNumber:        {http.StatusConflict, "duplicate_id_number"},
	domainerrors.ErrDuplicateUsername:        {http.StatusConflict, "duplicate_username"},
	domainerrors.ErrDuplicateIdempotencyKey:  {http.StatusConflict, "duplicate_idempotency_key"},
	domainerrors.ErrInvalidStateTransition:   {http.StatusConflict, "invalid_state_transition"},
	domainerrors.ErrInvalidAmount:            {http.StatusBadRequest, "invalid_amount"},
	domainerrors.ErrInvalidCurrency:          {http.StatusBadRequest, "invalid_currency"},
	domainerrors.ErrInvalidProvider:          {http.StatusBadRequest, "invalid_provider"},
	domainerrors.ErrValidationFailed:         {http.StatusBadRequest, "validation_failed"},
	domainerrors.ErrInvalidInput:             {http.StatusBadRequest, "invalid_input"},
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	var verr *domainerrors.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Msg: verr.Error(), Code: "validation_failed"})
		return
	}

	for sentinel, mapping := range errorMappings {
		if errors.Is(err, sentinel) {
			writeJSON(w, mapping.status, ErrorResponse{Msg: sentinel.Error(), Code: mapping.code})
			return
		}
	}

	log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Msg: "internal server error", Code: "internal"})
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. A false return means the response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Msg: "invalid request body", Code: "invalid_body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Msg:  "validation failed on field " + verrs[0].Field(),
				Code: "validation_failed",
			})
			return false
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Msg: "validation failed", Code: "validation_failed"})
		return false
	}
	return true
}
