package logging

// Field names shared by every component so log output stays filterable.
const (
	FieldFile        = "file_path"
	FieldCategory    = "category"
	FieldKeyword     = "keyword"
	FieldDetails     = "details"
	FieldTransaction = "transaction_id"
	FieldRow         = "row"
	FieldReason      = "reason"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
)
