// Package validation binds request input into typed payloads and turns
// validator failures into field-level errors for the JSON error envelope.
package validation
