package reporting

import (
	"math"

	"campaigninsights/internal/domain/campaign"
)

// ChartPoint точка серии
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries серия данных графика
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartConfig описание столбчатой диаграммы спроса по кампаниям
type ChartConfig struct {
	ChartType string        `json:"chart_type"`
	Title     string        `json:"title"`
	XAxis     string        `json:"x_axis"`
	YAxis     string        `json:"y_axis"`
	Series    []ChartSeries `json:"series"`
}

const barColor = "#4472C4"

// BuildDemandChart строит серию "кампания -> суммарный спрос" в порядке рейтинга
func BuildDemandChart(ranking []campaign.RankingEntry) ChartConfig {
	points := make([]ChartPoint, 0, len(ranking))
	for _, entry := range ranking {
		points = append(points, ChartPoint{
			Label: entry.Campaign,
			Value: roundTo2(entry.TotalDemand),
		})
	}

	return ChartConfig{
		ChartType: "bar",
		Title:     "Kampagnen Demand Vergleich",
		XAxis:     campaign.ColumnCampaign,
		YAxis:     campaign.ColumnDemandValue,
		Series: []ChartSeries{{
			Name:  campaign.ColumnDemandValue,
			Data:  points,
			Color: barColor,
		}},
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
