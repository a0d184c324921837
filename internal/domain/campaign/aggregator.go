package campaign

import "sort"

// Report результат обработки одной загрузки
type Report struct {
	Records    []Record       `json:"rows"`
	Ranking    []RankingEntry `json:"ranking"`
	aggregates map[string]*CampaignAggregate
}

// Campaign возвращает агрегат кампании по идентификатору
func (r *Report) Campaign(name string) (*CampaignAggregate, bool) {
	if r == nil {
		return nil, false
	}
	agg, ok := r.aggregates[name]
	return agg, ok
}

// Campaigns возвращает агрегаты в порядке рейтинга
func (r *Report) Campaigns() []*CampaignAggregate {
	if r == nil {
		return nil
	}
	result := make([]*CampaignAggregate, 0, len(r.Ranking))
	for _, entry := range r.Ranking {
		result = append(result, r.aggregates[entry.Campaign])
	}
	return result
}

// TotalDemand сумма спроса по всем кампаниям
func (r *Report) TotalDemand() float64 {
	var total float64
	for _, entry := range r.Ranking {
		total += entry.TotalDemand
	}
	return total
}

// Aggregate группирует записи по кампании и строит рейтинг по убыванию суммарного спроса.
// При равных суммах сохраняется порядок первого появления кампании во входных данных.
func Aggregate(records []Record) *Report {
	report := &Report{
		Records:    records,
		Ranking:    []RankingEntry{},
		aggregates: make(map[string]*CampaignAggregate),
	}

	var order []string
	seenProducts := make(map[string]map[string]struct{})

	for _, rec := range records {
		agg, ok := report.aggregates[rec.Campaign]
		if !ok {
			agg = &CampaignAggregate{
				Campaign:  rec.Campaign,
				StartDate: rec.StartDate,
				EndDate:   rec.EndDate,
			}
			report.aggregates[rec.Campaign] = agg
			seenProducts[rec.Campaign] = make(map[string]struct{})
			order = append(order, rec.Campaign)
		}

		agg.TotalDemand += rec.DemandValue
		agg.Records = append(agg.Records, rec)
		if rec.StartDate.Before(agg.StartDate) {
			agg.StartDate = rec.StartDate
		}
		if rec.EndDate.After(agg.EndDate) {
			agg.EndDate = rec.EndDate
		}
		if _, dup := seenProducts[rec.Campaign][rec.Product]; !dup {
			seenProducts[rec.Campaign][rec.Product] = struct{}{}
			agg.Products = append(agg.Products, rec.Product)
		}
	}

	for _, name := range order {
		report.Ranking = append(report.Ranking, RankingEntry{
			Campaign:    name,
			TotalDemand: report.aggregates[name].TotalDemand,
		})
	}
	sort.SliceStable(report.Ranking, func(i, j int) bool {
		return report.Ranking[i].TotalDemand > report.Ranking[j].TotalDemand
	})

	return report
}

// Analyze нормализует таблицу с проверкой колонок и агрегирует записи
func Analyze(table Table, normalizer Normalizer) (*Report, error) {
	records, err := normalizer.Normalize(table)
	if err != nil {
		return nil, err
	}
	return Aggregate(records), nil
}
