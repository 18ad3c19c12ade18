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
	FieldFiles      = "files"
	FieldDuration   = "duration"

	// Document fields.
	FieldBlock    = "block"
	FieldBlocks   = "blocks"
	FieldFlavour  = "flavour"
	FieldOffset   = "offset"
	FieldRanges   = "ranges"
	FieldOp       = "op"
	FieldLanguage = "language"

	// Surface fields.
	FieldMarker = "marker"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
