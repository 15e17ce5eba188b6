package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestEnhancedErrorFormatting(t *testing.T) {
	cause := errors.New("open Room_Dataset_V2.xlsx: no such file")
	err := NewTableLoadError(cause, "xlsx", "rooms")

	msg := err.Error()
	if !strings.HasPrefix(msg, "[TABLE_LOAD_FAILED] Failed to load reference table") {
		t.Errorf("unexpected prefix: %s", msg)
	}
	if !strings.Contains(msg, "rooms table from the xlsx source") {
		t.Errorf("details missing: %s", msg)
	}
	if !strings.Contains(msg, "(cause: open Room_Dataset_V2.xlsx") {
		t.Errorf("cause missing: %s", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if err.Metadata["table"] != "rooms" || err.Metadata["source"] != "xlsx" {
		t.Errorf("unexpected metadata: %v", err.Metadata)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "Invalid input").
		WithDetails("steps needs a number").
		WithSuggestion("try migrate steps 1")
	err.Documentation = "docs/migrations.md"

	want := "Invalid input\n\nDetails: steps needs a number\n\nSuggestion: try migrate steps 1\n\nLearn more: docs/migrations.md"
	if got := err.UserMessage(); got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}

	if got := New(ErrCodeCacheWrite, "plain").UserMessage(); got != "plain" {
		t.Errorf("UserMessage() = %q, want plain", got)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmtWrap(NewLLMRateLimitError("openai"))

	var enhanced *EnhancedError
	if !errors.As(wrapped, &enhanced) {
		t.Fatal("expected errors.As to find the enhanced error")
	}
	if enhanced.Code != ErrCodeLLMRateLimit {
		t.Errorf("Code = %s", enhanced.Code)
	}
}

func TestConstructorCodes(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  *EnhancedError
		code ErrorCode
	}{
		{"missing column", NewMissingColumnError("Sheet1", []string{"Floor", "Purpose"}), ErrCodeTableMissing},
		{"resolver fault", NewResolverFaultError("index out of range", "staff"), ErrCodeResolverFault},
		{"rewrite", NewLLMRewriteError(cause, "claude"), ErrCodeLLMRewrite},
		{"invalid input", NewInvalidInputError("steps", "not a number"), ErrCodeInvalidInput},
		{"db connection", NewDatabaseConnectionError(cause), ErrCodeDatabaseConnection},
		{"db query", NewDatabaseQueryError(cause, "insert rooms"), ErrCodeDatabaseQuery},
		{"migration", NewMigrationError(cause, "up"), ErrCodeMigration},
		{"cache read", NewCacheReadError(cause, "tibot:rewrite:x"), ErrCodeCacheRead},
		{"cache write", NewCacheWriteError(cause, "tibot:rewrite:x"), ErrCodeCacheWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if !strings.Contains(tt.err.Error(), string(tt.code)) {
				t.Errorf("Error() does not mention the code: %s", tt.err.Error())
			}
		})
	}

	if !strings.Contains(NewMissingColumnError("Sheet1", []string{"Floor", "Purpose"}).Details, "Floor, Purpose") {
		t.Error("missing column names not listed")
	}
}

func TestWithMetadataOnZeroValue(t *testing.T) {
	err := (&EnhancedError{Code: ErrCodeInvalidInput}).WithMetadata("field", "question")
	if err.Metadata["field"] != "question" {
		t.Errorf("metadata not set: %v", err.Metadata)
	}
}

type wrapper struct{ err error }

func (w wrapper) Error() string { return "outer: " + w.err.Error() }
func (w wrapper) Unwrap() error { return w.err }

func fmtWrap(err error) error { return wrapper{err} }
