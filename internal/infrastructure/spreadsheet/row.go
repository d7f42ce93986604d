package spreadsheet

// Row is one untyped record handed in by an external spreadsheet parser:
// header-keyed values plus the source line number for error reporting. The
// engine never parses files itself; whatever produced the rows owns
// encodings, delimiters and header mapping.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// GetOrDefault returns the value for a column, or default if absent or empty
func (r *Row) GetOrDefault(header, defaultVal string) string {
	if val, ok := r.Data[header]; ok && val != "" {
		return val
	}
	return defaultVal
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}
