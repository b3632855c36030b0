package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger returns a debug-level secure text logger writing to buf.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return NewSecureLogger(buf, true)
}

// TestSecureHandlerMasksSensitiveKeys tests key-based sanitization.
func TestSecureHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		mask bool
	}{
		{name: "password key", key: "password", mask: true},
		{name: "passwd key", key: "passwd", mask: true},
		{name: "raw line key", key: "line", mask: true},
		{name: "record key", key: "record", mask: true},
		{name: "api key", key: "api_key", mask: true},
		{name: "embedded keyword", key: "user_password_hash", mask: true},
		{name: "uppercase key", key: "PASSWORD", mask: true},
		{name: "plain key passes", key: "source", mask: false},
		{name: "keyboard is not a key", key: "keyboard", mask: false},
		{name: "pass_rate passes", key: "pass_rate", mask: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newTestLogger(&buf)

			logger.Info("test", tt.key, "hello world")

			out := buf.String()
			masked := strings.Contains(out, MaskValue)
			if masked != tt.mask {
				t.Errorf("key %q masked = %v, want %v (output: %s)", tt.key, masked, tt.mask, out)
			}
			if tt.mask && strings.Contains(out, "hello world") {
				t.Errorf("sensitive value leaked: %s", out)
			}
		})
	}
}

// TestSecureHandlerMasksSensitiveValues tests pattern-based sanitization.
func TestSecureHandlerMasksSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		mask  bool
	}{
		{name: "bcrypt hash", value: "$2a$10$N9qo8uLOickgx2ZMRZoMye", mask: true},
		{name: "md5 digest", value: "5f4dcc3b5aa765d61d8327deb882cf99", mask: true},
		{name: "sha1 digest", value: "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8", mask: true},
		{name: "jwt token", value: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.abc123", mask: true},
		{name: "plain value passes", value: "dump.txt", mask: false},
		{name: "short hex passes", value: "deadbeef", mask: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newTestLogger(&buf)

			logger.Info("test", "detail", tt.value)

			masked := strings.Contains(buf.String(), MaskValue)
			if masked != tt.mask {
				t.Errorf("value %q masked = %v, want %v", tt.value, masked, tt.mask)
			}
		})
	}
}

// TestSecureHandlerGroups tests sanitization inside attribute groups.
func TestSecureHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Info("test", slog.Group("dump",
		slog.String("source", "dump.txt"),
		slog.String("password", "hunter2"),
	))

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("grouped password leaked: %s", out)
	}
	if !strings.Contains(out, MaskValue) {
		t.Errorf("expected mask in output: %s", out)
	}
	if !strings.Contains(out, "dump.txt") {
		t.Errorf("expected safe grouped value: %s", out)
	}
}

// TestSecureHandlerWithAttrs tests sanitization of pre-attached attributes.
func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf).With("token", "abc-secret-token")

	logger.Info("test")

	out := buf.String()
	if strings.Contains(out, "abc-secret-token") {
		t.Errorf("attached token leaked: %s", out)
	}
	if !strings.Contains(out, MaskValue) {
		t.Errorf("expected mask in output: %s", out)
	}
}

// TestSecureLoggerLevels tests verbose level gating.
func TestSecureLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("default suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, false)

		logger.Info("should not appear")
		logger.Warn("should appear")

		out := buf.String()
		if strings.Contains(out, "should not appear") {
			t.Error("info logged at default level")
		}
		if !strings.Contains(out, "should appear") {
			t.Error("warning missing at default level")
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)

		logger.Debug("debug detail")

		if !strings.Contains(buf.String(), "debug detail") {
			t.Error("debug missing in verbose mode")
		}
	})
}

// TestSecureJSONLogger tests the JSON variant sanitizes too.
func TestSecureJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureJSONLogger(&buf, true)

	logger.Info("test", "password", "hunter2")

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("password leaked in JSON output: %s", out)
	}
	if !strings.Contains(out, MaskValue) {
		t.Errorf("expected mask in JSON output: %s", out)
	}
}
