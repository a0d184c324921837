package campaign

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultReferenceYear год, подставляемый в даты формата "D-Mon"
const DefaultReferenceYear = 2025

// dateLayout формат даты после добавления года: "6-Mar-2025"
const dateLayout = "2-Jan-2006"

// Normalizer преобразует текстовые поля в даты и числа.
//
// Во входных датах нет года, поэтому ко всем датам добавляется ReferenceYear.
// Кампания, пересекающая границу года ("28-Dec" .. "3-Jan"), получит дату
// окончания раньше даты начала; такие строки не исправляются.
type Normalizer struct {
	ReferenceYear int
}

// NewNormalizer создает нормализатор; year <= 0 заменяется на DefaultReferenceYear
func NewNormalizer(year int) Normalizer {
	if year <= 0 {
		year = DefaultReferenceYear
	}
	return Normalizer{ReferenceYear: year}
}

func (n Normalizer) year() int {
	if n.ReferenceYear <= 0 {
		return DefaultReferenceYear
	}
	return n.ReferenceYear
}

// ParseDate разбирает дату формата "D-Mon" (например "6-Mar")
func (n Normalizer) ParseDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value) + "-" + strconv.Itoa(n.year())
	return time.Parse(dateLayout, s)
}

// errNonFinite NaN и бесконечность не являются значением спроса
var errNonFinite = errors.New("value is not a finite number")

// ParseDemand преобразует строку в конечное число с плавающей точкой
func (n Normalizer) ParseDemand(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNonFinite
	}
	return v, nil
}

// Normalize преобразует все строки таблицы в записи.
// Первая же ошибка прерывает обработку, частичный результат не возвращается.
func (n Normalizer) Normalize(table Table) ([]Record, error) {
	if err := ValidateColumns(table.Header); err != nil {
		return nil, err
	}

	idxCampaign := table.ColumnIndex(ColumnCampaign)
	idxProduct := table.ColumnIndex(ColumnProduct)
	idxDemand := table.ColumnIndex(ColumnDemandValue)
	idxStart := table.ColumnIndex(ColumnStartDate)
	idxEnd := table.ColumnIndex(ColumnEndDate)

	known := map[int]bool{idxCampaign: true, idxProduct: true, idxDemand: true, idxStart: true, idxEnd: true}

	records := make([]Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		rowNum := i + 1
		cell := func(idx int) string {
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}

		start, err := n.ParseDate(cell(idxStart))
		if err != nil {
			return nil, &DateParseError{Row: rowNum, Column: ColumnStartDate, Value: cell(idxStart), Err: err}
		}
		end, err := n.ParseDate(cell(idxEnd))
		if err != nil {
			return nil, &DateParseError{Row: rowNum, Column: ColumnEndDate, Value: cell(idxEnd), Err: err}
		}
		demand, err := n.ParseDemand(cell(idxDemand))
		if err != nil {
			return nil, &NumericParseError{Row: rowNum, Column: ColumnDemandValue, Value: cell(idxDemand), Err: err}
		}

		record := Record{
			Campaign:    cell(idxCampaign),
			Product:     cell(idxProduct),
			DemandValue: demand,
			StartDate:   start,
			EndDate:     end,
		}
		for idx, h := range table.Header {
			if known[idx] {
				continue
			}
			if record.Extra == nil {
				record.Extra = make(map[string]string)
			}
			record.Extra[cleanHeader(h)] = cell(idx)
		}
		records = append(records, record)
	}

	return records, nil
}
