package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  storage_key  ", Value: "  savedJobs  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "storage_key" || fields[0].String != "savedJobs" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestDigestFields(t *testing.T) {
	fields := DigestFields("jobTrackerDigest_2025-03-03", " 2025-03-03 ")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldStorageKey || fields[0].String != "jobTrackerDigest_2025-03-03" {
		t.Fatalf("unexpected key field: %+v", fields[0])
	}

	if fields[1].Key != FieldDigestDate || fields[1].String != "2025-03-03" {
		t.Fatalf("unexpected date field: %+v", fields[1])
	}

	if empty := DigestFields("", ""); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithDigestFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithDigestFields(zap.New(core), "jobTrackerDigest_2025-03-03", "2025-03-03").Info("digest generated")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldDigestDate] != "2025-03-03" {
		t.Fatalf("expected digest date, got %q", ctx[FieldDigestDate])
	}

	WithDigestFields(nil, "k", "d").Info("no panic")
}

func TestWithListingFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithListingFields(zap.New(core), "job-001").Info("saved")

	if ctx := observed.All()[0].ContextMap(); ctx[FieldListingID] != "job-001" {
		t.Fatalf("expected listing id, got %q", ctx[FieldListingID])
	}
}
