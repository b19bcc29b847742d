package logging

// Standardized field names for structured logging.
const (
	FieldFile         = "file_path"
	FieldSheet        = "sheet"
	FieldCategory     = "category"
	FieldStore        = "store"
	FieldAccount      = "account_filter"
	FieldMonth        = "month"
	FieldOperation    = "operation"
	FieldBackend      = "backend"
	FieldRevision     = "revision"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
	FieldCount        = "count"
	FieldFiltered     = "filtered_count"
	FieldDelimiter    = "delimiter"
	FieldFormat       = "format"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldAddr         = "addr"
	FieldMissingField = "missing_columns"
)
