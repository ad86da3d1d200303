package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeNetwork,
				Message: "unreachable",
				Err:     errors.New("dial tcp: connection refused"),
			},
			expected: "NETWORK_ERROR: unreachable (caused by: dial tcp: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Listing")
	wrapped := fmt.Errorf("fetching listing: %w", appErr)
	regularErr := errors.New("regular error")

	if AsAppError(wrapped) != appErr {
		t.Errorf("AsAppError() should unwrap to the same AppError")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("reserve: %w", Conflict("already booked"))
	if !HasCode(err, CodeConflict) {
		t.Errorf("expected wrapped conflict to be detected")
	}
	if HasCode(err, CodeNotFound) {
		t.Errorf("did not expect NOT_FOUND")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Errorf("plain errors carry no code")
	}
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantReason string
		wantMsg    string
	}{
		{
			name:     "network failure",
			status:   StatusNetwork,
			wantCode: CodeNetwork,
			wantMsg:  "Unable to reach the server, check your connection",
		},
		{
			name:       "banned account",
			status:     http.StatusUnauthorized,
			body:       `{"reason":"BANNED"}`,
			wantCode:   CodeUnauthorized,
			wantReason: ReasonBanned,
			wantMsg:    "Your account has been banned",
		},
		{
			name:       "reason sent as code",
			status:     http.StatusUnauthorized,
			body:       `{"code":"NON_VERIFIED","message":"x"}`,
			wantCode:   CodeUnauthorized,
			wantReason: ReasonNonVerified,
			wantMsg:    "Your account has not been verified yet, check your emails",
		},
		{
			name:       "bad credentials",
			status:     http.StatusUnauthorized,
			body:       `{"reason":"BAD_CREDENTIALS"}`,
			wantCode:   CodeUnauthorized,
			wantReason: ReasonBadCredentials,
			wantMsg:    "Incorrect email or password",
		},
		{
			name:     "validation message verbatim",
			status:   http.StatusBadRequest,
			body:     `{"message":"La date de fin doit être après la date de début"}`,
			wantCode: CodeValidation,
			wantMsg:  "La date de fin doit être après la date de début",
		},
		{
			name:     "plain text conflict",
			status:   http.StatusConflict,
			body:     `Immatriculation déjà utilisée`,
			wantCode: CodeConflict,
			wantMsg:  "Immatriculation déjà utilisée",
		},
		{
			name:     "not found default",
			status:   http.StatusNotFound,
			wantCode: CodeNotFound,
			wantMsg:  "The requested resource does not exist",
		},
		{
			name:     "server fault hides body",
			status:   http.StatusInternalServerError,
			body:     `{"message":"NullPointerException"}`,
			wantCode: CodeInternal,
			wantMsg:  "The server encountered an error, please try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromResponse(tt.status, []byte(tt.body))
			if got.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestFromResponse_FieldErrors(t *testing.T) {
	got := FromResponse(http.StatusBadRequest, []byte(`{"message":"Invalid","errors":{"immatriculation":"format invalide","marque":"obligatoire"}}`))

	if got.Details["immatriculation"] != "format invalide" {
		t.Errorf("expected field message kept verbatim, got %v", got.Details["immatriculation"])
	}

	msg := UserMessage(got)
	want := "Invalid\n  - immatriculation: format invalide\n  - marque: obligatoire"
	if msg != want {
		t.Errorf("UserMessage() = %q, want %q", msg, want)
	}
}

func TestUserMessage(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Errorf("nil error should render empty")
	}
	if got := UserMessage(errors.New("boom")); got != "An unexpected error occurred" {
		t.Errorf("unexpected message for plain error: %q", got)
	}
	if got := UserMessage(Conflict("Vehicle already reserved")); got != "Vehicle already reserved" {
		t.Errorf("unexpected message for conflict: %q", got)
	}
}
