package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"campaigninsights/internal/domain/campaign"
)

func testReport() *campaign.Report {
	d := func(day int) time.Time { return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC) }
	return campaign.Aggregate([]campaign.Record{
		{Campaign: "A", Product: "x1", DemandValue: 10, StartDate: d(1), EndDate: d(2), Extra: map[string]string{"Region": "Nord"}},
		{Campaign: "A", Product: "x2", DemandValue: 5, StartDate: d(3), EndDate: d(4)},
		{Campaign: "B", Product: "y1", DemandValue: 20.004, StartDate: d(1), EndDate: d(2)},
	})
}

func TestBuildDemandChart(t *testing.T) {
	chart := BuildDemandChart(testReport().Ranking)

	assert.Equal(t, "bar", chart.ChartType)
	assert.Equal(t, "Campaign", chart.XAxis)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, []ChartPoint{{Label: "B", Value: 20}, {Label: "A", Value: 15}}, chart.Series[0].Data)
}

func TestBuildDemandChartEmpty(t *testing.T) {
	chart := BuildDemandChart(nil)
	require.Len(t, chart.Series, 1)
	assert.Empty(t, chart.Series[0].Data)
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, testReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetRawData, SheetCampaigns}, f.GetSheetList())

	raw, err := f.GetRows(SheetRawData)
	require.NoError(t, err)
	require.Len(t, raw, 4)
	assert.Equal(t, []string{"Campaign", "Product", "Demand Value", "Start Date", "End Date", "Region"}, raw[0])
	assert.Equal(t, "Nord", raw[1][5])
	assert.Equal(t, "03.01.2025", raw[2][3])

	campaigns, err := f.GetRows(SheetCampaigns)
	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	assert.Equal(t, "B", campaigns[1][1])
	assert.Equal(t, "A", campaigns[2][1])
	assert.Equal(t, "x1, x2", campaigns[2][3])
	assert.Equal(t, "04.01.2025", campaigns[2][5])
}
