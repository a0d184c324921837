package campaign

// ValidateColumns проверяет, что все обязательные колонки присутствуют в заголовке.
// Порядок колонок и лишние колонки значения не имеют.
func ValidateColumns(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[cleanHeader(c)] = struct{}{}
	}

	var missing []string
	for _, required := range RequiredColumns() {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{
			Required: RequiredColumns(),
			Missing:  missing,
		}
	}
	return nil
}
