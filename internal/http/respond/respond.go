// Package respond writes JSON responses and maps domain errors to HTTP.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/intima/internal/account"
	"github.com/MrJamesThe3rd/intima/internal/audit"
	"github.com/MrJamesThe3rd/intima/internal/consent"
	"github.com/MrJamesThe3rd/intima/internal/cycle"
	"github.com/MrJamesThe3rd/intima/internal/generate"
	"github.com/MrJamesThe3rd/intima/internal/ledger"
	"github.com/MrJamesThe3rd/intima/internal/media"
	"github.com/MrJamesThe3rd/intima/internal/pairing"
	"github.com/MrJamesThe3rd/intima/internal/retry"
)

type ErrorBody struct {
	Code    string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type mapping struct {
	err    error
	status int
	code   string
}

// Order matters only where one sentinel wraps another.
var mappings = []mapping{
	{pairing.ErrNotPaired, http.StatusConflict, "not_paired"},
	{pairing.ErrAlreadyPaired, http.StatusConflict, "already_paired"},
	{pairing.ErrSelfPairing, http.StatusUnprocessableEntity, "self_pairing"},
	{pairing.ErrInvalidCode, http.StatusNotFound, "invalid_code"},
	{pairing.ErrNotMember, http.StatusForbidden, "not_member"},
	{pairing.ErrCoupleNotFound, http.StatusNotFound, "not_found"},
	{consent.ErrUnknownCapability, http.StatusBadRequest, "unknown_capability"},
	{consent.ErrConsentRequired, http.StatusForbidden, "consent_required"},
	{ledger.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{ledger.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
	{ledger.ErrInvalidRecipient, http.StatusUnprocessableEntity, "invalid_recipient"},
	{ledger.ErrInvalidDecision, http.StatusBadRequest, "invalid_request"},
	{ledger.ErrInvalidPayment, http.StatusUnprocessableEntity, "invalid_payment"},
	{ledger.ErrAccountNotFound, http.StatusNotFound, "not_found"},
	{ledger.ErrWithdrawalNotFound, http.StatusNotFound, "not_found"},
	{ledger.ErrUnknownPackage, http.StatusNotFound, "not_found"},
	{ledger.ErrUnknownGift, http.StatusNotFound, "not_found"},
	{account.ErrNotFound, http.StatusNotFound, "not_found"},
	{account.ErrAgeVerificationRequired, http.StatusForbidden, "age_verification_required"},
	{cycle.ErrInvalidFlow, http.StatusBadRequest, "invalid_request"},
	{cycle.ErrInvalidDate, http.StatusBadRequest, "invalid_request"},
	{cycle.ErrInvalidCSV, http.StatusBadRequest, "invalid_request"},
	{media.ErrUnsupportedType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
	{media.ErrEmptyUpload, http.StatusBadRequest, "invalid_request"},
	{media.ErrTooLarge, http.StatusRequestEntityTooLarge, "too_large"},
	{media.ErrStorageUnavailable, http.StatusServiceUnavailable, "unavailable"},
	{audit.ErrInvalidEvent, http.StatusBadRequest, "invalid_request"},
	{generate.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{generate.ErrNotConfigured, http.StatusServiceUnavailable, "unavailable"},
	{retry.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
}

// RequestError is a malformed or invalid request body.
type RequestError struct {
	Message string
	Details map[string]string
}

func (e *RequestError) Error() string {
	return e.Message
}

func Status(err error) (int, string) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, "invalid_request"
	}

	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}

	return http.StatusInternalServerError, "internal"
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes the mapped status and code. Internal errors are logged and
// their message is not exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, code := Status(err)
	body := ErrorBody{Code: code, Message: err.Error()}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		body.Details = reqErr.Details
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

		body.Message = "internal error"
	}

	JSON(w, status, body)
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Decode reads a JSON body into dst and validates its struct tags.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return &RequestError{Message: fmt.Sprintf("invalid JSON body: %v", err)}
	}

	return Validate(dst)
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestError{Message: err.Error()}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[jsonName(fe)] = fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}

	return &RequestError{Message: "request validation failed", Details: details}
}

func jsonName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}

	return fe.StructField()
}

// Limit reads the limit query parameter, capped at upper.
func Limit(r *http.Request, def, upper int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}

	return min(n, upper)
}
