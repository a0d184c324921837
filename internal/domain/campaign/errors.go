package campaign

import (
	"fmt"
	"strings"
)

// MissingColumnsError во входных данных отсутствуют обязательные колонки
type MissingColumnsError struct {
	Required []string
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("file must contain the columns %s (missing: %s)",
		strings.Join(e.Required, ", "), strings.Join(e.Missing, ", "))
}

// DateParseError значение даты не соответствует формату "D-Mon"
type DateParseError struct {
	Row    int // номер строки данных, начиная с 1
	Column string
	Value  string
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot parse date %q (expected D-Mon, e.g. 6-Mar)", e.Row, e.Column, e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// NumericParseError значение не является числом
type NumericParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot parse number %q", e.Row, e.Column, e.Value)
}

func (e *NumericParseError) Unwrap() error {
	return e.Err
}
