package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

// ErrInvalidAddress is returned before any request when an address
// argument is not a 0x-prefixed 20-byte hex string.
var ErrInvalidAddress = errors.New("invalid address")

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsValidAddress reports whether s matches ^0x[a-fA-F0-9]{40}$.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

func checkAddress(field, s string) error {
	if !IsValidAddress(s) {
		return fmt.Errorf("%s %q: %w", field, s, ErrInvalidAddress)
	}
	return nil
}

// Error is a non-2xx API response.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"-"`
	Body    []byte `json:"-"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("clanker api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("clanker api %d: %s", e.Status, e.Message)
}

func (e *Error) IsNotFound() bool { return e.Status == http.StatusNotFound }

func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func (e *Error) IsRateLimited() bool { return e.Status == http.StatusTooManyRequests }

func parseError(status int, body []byte) error {
	apiErr := &Error{Status: status, Body: body}

	var nested struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		apiErr.Code = nested.Error.Code
		apiErr.Message = nested.Error.Message
		return apiErr
	}

	var flat struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && (flat.Message != "" || flat.Error != "") {
		apiErr.Code = flat.Code
		apiErr.Message = flat.Message
		if apiErr.Message == "" {
			apiErr.Message = flat.Error
		}
		return apiErr
	}

	apiErr.Message = http.StatusText(status)
	if len(body) > 0 {
		apiErr.Message = string(body)
	}
	return apiErr
}
