package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"resalab/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidSortParam",
			failure: failure.InvalidSortParam,
			code:    http.StatusBadRequest,
			message: "invalid sort parameter",
		},
		{
			name:    "InvalidIDParam",
			failure: failure.InvalidIDParam,
			code:    http.StatusBadRequest,
			message: "invalid id parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestIDExists(t *testing.T) {
	tests := []struct {
		entity  string
		message string
	}{
		{entity: "reservation", message: "A new reservation cannot already have an ID"},
		{entity: "salle", message: "A new salle cannot already have an ID"},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			err := failure.IDExists(tt.entity)

			if failure.GetCode(err) != http.StatusBadRequest {
				t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, failure.GetCode(err))
			}
			if err.Error() != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, err.Error())
			}
			if failure.GetKey(err) != "idexists" {
				t.Errorf("expected key to be 'idexists', got %s", failure.GetKey(err))
			}
			if !failure.IsIDExists(fmt.Errorf("wrapped: %w", err)) {
				t.Error("expected wrapped failure to be recognised as id-exists")
			}
		})
	}

	if failure.IsIDExists(failure.BadRequestFromString("other")) {
		t.Error("expected plain bad request not to be id-exists")
	}
}

func TestInternalError(t *testing.T) {
	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil input")
	}

	result := failure.InternalError(errors.New("database connection failed"))
	if failure.GetCode(result) != http.StatusInternalServerError {
		t.Errorf("expected code to be %d, got %d", http.StatusInternalServerError, failure.GetCode(result))
	}
}

func TestNotFound(t *testing.T) {
	result := failure.NotFound("reservation not found")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Errorf("expected result to be *failure.Failure, got %T", result)
	} else {
		if f.Code != http.StatusNotFound {
			t.Errorf("expected code to be %d, got %d", http.StatusNotFound, f.Code)
		}
		if f.Message != "reservation not found" {
			t.Errorf("expected message to be 'reservation not found', got %s", f.Message)
		}
	}
}

func TestConflict(t *testing.T) {
	result := failure.Conflict("duplicate key")

	if failure.GetCode(result) != http.StatusConflict {
		t.Errorf("expected code to be %d, got %d", http.StatusConflict, failure.GetCode(result))
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.NotFound("test")),
			expected: http.StatusNotFound,
		},
		{
			name:     "location build error",
			input:    fmt.Errorf("%w: bad path", failure.ErrLocationBuild),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}
