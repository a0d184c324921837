package campaign

import (
	"errors"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeExample(t *testing.T) {
	table := Table{Header: header(), Rows: [][]string{
		{"A", "x1", "10", "1-Jan", "2-Jan"},
		{"A", "x2", "5", "3-Jan", "4-Jan"},
		{"B", "y1", "20", "1-Jan", "2-Jan"},
	}}

	report, err := Analyze(table, NewNormalizer(2025))
	require.NoError(t, err)

	assert.Equal(t, []RankingEntry{{"B", 20}, {"A", 15}}, report.Ranking)

	a, ok := report.Campaign("A")
	require.True(t, ok)
	assert.Equal(t, []string{"x1", "x2"}, a.Products)
	assert.Equal(t, "01.01.2025", a.StartDate.Format("02.01.2006"))
	assert.Equal(t, "04.01.2025", a.EndDate.Format("02.01.2006"))
	assert.Len(t, a.Records, 2)

	campaigns := report.Campaigns()
	require.Len(t, campaigns, 2)
	assert.Equal(t, "B", campaigns[0].Campaign)
}

func TestAnalyzeMissingColumnStopsBeforeAggregation(t *testing.T) {
	table := Table{
		Header: []string{"Campaign", "Demand Value", "Start Date", "End Date"},
		Rows:   [][]string{{"A", "10", "1-Jan", "2-Jan"}},
	}

	report, err := Analyze(table, NewNormalizer(2025))
	assert.Nil(t, report)

	var missingErr *MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"Product"}, missingErr.Missing)
}

func TestAnalyzeMalformedDateAborts(t *testing.T) {
	table := Table{Header: header(), Rows: [][]string{{"A", "x1", "10", "Mar-6", "2-Jan"}}}

	report, err := Analyze(table, NewNormalizer(2025))
	assert.Nil(t, report)

	var dateErr *DateParseError
	assert.True(t, errors.As(err, &dateErr))
}

func TestAggregateEmpty(t *testing.T) {
	report, err := Analyze(Table{Header: header()}, NewNormalizer(2025))
	require.NoError(t, err)
	assert.Empty(t, report.Ranking)
	assert.NotNil(t, report.Ranking)
	assert.Empty(t, report.Campaigns())
	_, ok := report.Campaign("A")
	assert.False(t, ok)
}

func TestAggregateTiesKeepFirstAppearance(t *testing.T) {
	table := Table{Header: header(), Rows: [][]string{
		{"C", "p", "5", "1-Jan", "2-Jan"},
		{"A", "p", "5", "1-Jan", "2-Jan"},
		{"B", "p", "7", "1-Jan", "2-Jan"},
		{"D", "p", "5", "1-Jan", "2-Jan"},
	}}

	report, err := Analyze(table, NewNormalizer(2025))
	require.NoError(t, err)

	var names []string
	for _, e := range report.Ranking {
		names = append(names, e.Campaign)
	}
	assert.Equal(t, []string{"B", "C", "A", "D"}, names)
}

func TestAggregateDuplicateProducts(t *testing.T) {
	table := Table{Header: header(), Rows: [][]string{
		{"A", "x2", "1", "5-Jan", "9-Jan"},
		{"A", "x1", "1", "2-Jan", "3-Jan"},
		{"A", "x2", "1", "7-Jan", "8-Jan"},
	}}

	report, err := Analyze(table, NewNormalizer(2025))
	require.NoError(t, err)

	a, _ := report.Campaign("A")
	assert.Equal(t, []string{"x2", "x1"}, a.Products)
	assert.Equal(t, 2, a.StartDate.Day())
	assert.Equal(t, 9, a.EndDate.Day())
	assert.Equal(t, 3.0, a.TotalDemand)
}

// randomTable генерирует случайный валидный набор данных
func randomTable(faker *gofakeit.Faker, rows, campaigns int) Table {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	names := make([]string, campaigns)
	for i := range names {
		names[i] = fmt.Sprintf("%s-%d", faker.BuzzWord(), i)
	}

	table := Table{Header: header()}
	for i := 0; i < rows; i++ {
		month := faker.RandomString(months)
		table.Rows = append(table.Rows, []string{
			faker.RandomString(names),
			faker.Word(),
			fmt.Sprintf("%d", faker.Number(0, 50000)),
			fmt.Sprintf("%d-%s", faker.Number(1, 14), month),
			fmt.Sprintf("%d-%s", faker.Number(15, 28), month),
		})
	}
	return table
}

func TestAggregateProperties(t *testing.T) {
	faker := gofakeit.New(42)

	for iteration := 0; iteration < 20; iteration++ {
		table := randomTable(faker, faker.Number(1, 200), faker.Number(1, 12))

		report, err := Analyze(table, NewNormalizer(2025))
		require.NoError(t, err)

		inputCampaigns := make(map[string]struct{})
		var inputTotal float64
		for _, rec := range report.Records {
			inputCampaigns[rec.Campaign] = struct{}{}
			inputTotal += rec.DemandValue
		}

		rankedCampaigns := make(map[string]struct{})
		for i, entry := range report.Ranking {
			rankedCampaigns[entry.Campaign] = struct{}{}
			if i > 0 {
				assert.GreaterOrEqual(t, report.Ranking[i-1].TotalDemand, entry.TotalDemand)
			}
		}

		assert.Equal(t, inputCampaigns, rankedCampaigns)
		assert.Len(t, report.Ranking, len(inputCampaigns))
		assert.InDelta(t, inputTotal, report.TotalDemand(), 1e-6)
	}
}
