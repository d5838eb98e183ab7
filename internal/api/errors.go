package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const detailSeparator = " — "

// APIError is a non-2xx answer of the analysis service.
type APIError struct {
	Status  int
	Message string `mapstructure:"error"`
	Details string `mapstructure:"details"`
	Hint    string `mapstructure:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if msg == "" {
		msg = "unexpected response"
	}
	return fmt.Sprintf("api status %d: %s", e.Status, msg)
}

// Detail returns the details field, falling back to the hint.
func (e *APIError) Detail() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Hint
}

// UserMessage turns any submission error into the single line shown to the user:
// the server error joined with its details or hint, else the transport error,
// else fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		parts := make([]string, 0, 2)
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			parts = append(parts, msg)
		} else {
			parts = append(parts, fallback)
		}
		if detail := strings.TrimSpace(apiErr.Detail()); detail != "" {
			parts = append(parts, detail)
		}
		return strings.Join(parts, detailSeparator)
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// parseAPIError builds an APIError from a response body. Bodies that are not
// JSON objects still produce an error carrying the status.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return apiErr
	}

	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           apiErr,
		DecodeHook:       mapstructure.DecodeHookFuncType(joinSliceHook),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return apiErr
	}
	// partial decode is fine; the status is already set
	_ = decoder.Decode(raw)
	apiErr.Status = status

	return apiErr
}

// joinSliceHook lets "details" arrive as a list of strings.
func joinSliceHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Slice || to.Kind() != reflect.String {
		return data, nil
	}

	items, ok := data.([]any)
	if !ok {
		return data, nil
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%v", item))
	}
	return strings.Join(parts, "; "), nil
}
