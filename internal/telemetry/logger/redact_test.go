package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestRedactSensitive_ByKey(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("login", "password", "hunter2", "user", "alice", "api_token", "")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if entry["password"] != redactedValue {
		t.Errorf("password = %v, want %s", entry["password"], redactedValue)
	}
	if entry["user"] != "alice" {
		t.Errorf("user = %v, want alice", entry["user"])
	}
	// Empty values are left alone.
	if entry["api_token"] != "" {
		t.Errorf("api_token = %v, want empty", entry["api_token"])
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.WithGroup("db").Info("connect", "secret", "s3cr3t", "host", "db.local")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	db, ok := entry["db"].(map[string]any)
	if !ok {
		t.Fatalf("db group missing: %v", entry)
	}
	if db["secret"] != redactedValue {
		t.Errorf("db.secret = %v, want %s", db["secret"], redactedValue)
	}
	if db["host"] != "db.local" {
		t.Errorf("db.host = %v, want db.local", db["host"])
	}
}

func TestIsSensitiveKey(t *testing.T) {
	sensitive := []string{"password", "DB_PASSWORD", "client_secret", "AuthHeader", "bearer", "private_pem"}
	for _, k := range sensitive {
		if !IsSensitiveKey(k) {
			t.Errorf("IsSensitiveKey(%q) = false, want true", k)
		}
	}

	plain := []string{"field", "source", "env", "run_id", "address"}
	for _, k := range plain {
		if IsSensitiveKey(k) {
			t.Errorf("IsSensitiveKey(%q) = true, want false", k)
		}
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":               "****",
		"abcd":           "****",
		"abcde":          "ab*de",
		"hunter2hunter2": "hu**********r2",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}
