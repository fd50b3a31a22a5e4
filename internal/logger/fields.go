package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldStorageKey is the structured log field key for a storage key.
	FieldStorageKey = "storage_key"
	// FieldDigestDate is the structured log field key for the digest calendar day.
	FieldDigestDate = "digest_date"
	// FieldListingID is the structured log field key for a job listing id.
	FieldListingID = "listing_id"
	// FieldFilter is the structured log field key for a filter name.
	FieldFilter = "filter"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DigestFields describes the digest being read or written.
func DigestFields(key, date string) []zap.Field {
	return StringFields(
		StringField{Key: FieldStorageKey, Value: key},
		StringField{Key: FieldDigestDate, Value: date},
	)
}

func WithDigestFields(logger *zap.Logger, key, date string) *zap.Logger {
	return WithFields(logger, DigestFields(key, date)...)
}

func WithListingFields(logger *zap.Logger, id string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldListingID, Value: id})...)
}
