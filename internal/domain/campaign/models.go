package campaign

import (
	"strings"
	"time"
)

// Обязательные колонки входного файла
const (
	ColumnCampaign    = "Campaign"
	ColumnProduct     = "Product"
	ColumnDemandValue = "Demand Value"
	ColumnStartDate   = "Start Date"
	ColumnEndDate     = "End Date"
)

// RequiredColumns возвращает набор обязательных колонок в каноническом порядке
func RequiredColumns() []string {
	return []string{ColumnCampaign, ColumnProduct, ColumnDemandValue, ColumnStartDate, ColumnEndDate}
}

// Table табличные данные загруженного файла: заголовок и строки в исходном виде
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex возвращает индекс колонки по имени или -1
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if cleanHeader(h) == name {
			return i
		}
	}
	return -1
}

// cleanHeader убирает BOM и пробелы вокруг имени колонки
func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

// Record одна нормализованная строка входных данных
type Record struct {
	Campaign    string            `json:"campaign"`
	Product     string            `json:"product"`
	DemandValue float64           `json:"demand_value"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Extra       map[string]string `json:"extra,omitempty"` // прочие колонки файла без преобразования
}

// CampaignAggregate агрегированные данные одной кампании
type CampaignAggregate struct {
	Campaign    string    `json:"campaign"`
	Products    []string  `json:"products"` // в порядке первого появления
	TotalDemand float64   `json:"total_demand"`
	StartDate   time.Time `json:"start_date"` // минимальная дата начала
	EndDate     time.Time `json:"end_date"`   // максимальная дата окончания
	Records     []Record  `json:"-"`
}

// RankingEntry элемент рейтинга кампаний
type RankingEntry struct {
	Campaign    string  `json:"campaign"`
	TotalDemand float64 `json:"total_demand"`
}
