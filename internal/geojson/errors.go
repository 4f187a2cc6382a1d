package geojson

import (
	"errors"
	"fmt"
)

// ErrorKind classifies conversion failures.
type ErrorKind int

const (
	// SchemaError means the input breaks the GeoJSON structure at Path.
	SchemaError ErrorKind = iota + 1
	// NotImplementedError means the input is valid GeoJSON that the
	// converter does not handle yet.
	NotImplementedError
)

func (k ErrorKind) String() string {
	switch k {
	case SchemaError:
		return "schema"
	case NotImplementedError:
		return "not_implemented"
	}
	return "unknown"
}

// ConversionError is returned for every failed conversion.
type ConversionError struct {
	Kind ErrorKind
	// Path locates the offending node, e.g. $.features[2].geometry.
	Path string
	// Message describes the violated rule or the unsupported feature.
	Message string
	// Feature names the unsupported GeoJSON type for NotImplementedError.
	Feature string
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// IsSchema reports whether err is a SchemaError.
func IsSchema(err error) bool {
	return kindOf(err) == SchemaError
}

// IsNotImplemented reports whether err is a NotImplementedError.
func IsNotImplemented(err error) bool {
	return kindOf(err) == NotImplementedError
}

func kindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func schemaError(path, format string, args ...any) error {
	return &ConversionError{
		Kind:    SchemaError,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

func notImplemented(path, feature string) error {
	return &ConversionError{
		Kind:    NotImplementedError,
		Path:    path,
		Message: feature + " not yet implemented",
		Feature: feature,
	}
}
