package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldDelimiter   = "delimiter"
	FieldOperation   = "operation"
	FieldReason      = "reason"
	FieldError       = "error"
	FieldCount       = "count"
	FieldVersion     = "schema_version"
	FieldMessageID   = "msg_id"
	FieldCollection  = "pmt_inf_id"
	FieldPayment     = "end_to_end_id"
	FieldAmount      = "amount"
	FieldControlSum  = "ctrl_sum"
	FieldFields      = "fields"
	FieldTransaction = "transactions"
)
