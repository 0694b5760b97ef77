// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig = "config"
	FieldJobs   = "jobs"
	FieldForce  = "force"
	FieldLevel  = "level"

	// Rendering fields.
	FieldData         = "data"
	FieldTemplate     = "template"
	FieldTemplates    = "templates"
	FieldTemplateType = "template_type"
	FieldFormat       = "format"
	FieldTokens       = "tokens"
	FieldChars        = "chars"
	FieldNodeType     = "node_type"
	FieldNodePath     = "node_path"
	FieldText         = "text"
	FieldDateFormat   = "date_format"

	// Server fields.
	FieldAddr      = "addr"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldEvent     = "event"
	FieldRequestID = "request_id"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
