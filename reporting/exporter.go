package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"campaigninsights/internal/domain/campaign"
)

// Имена листов отчета
const (
	SheetRawData   = "Rohdaten"
	SheetCampaigns = "Kampagnen"
)

const excelDateFormat = "02.01.2006"

// WriteExcel записывает отчет в книгу Excel: исходные строки и агрегаты по кампаниям
func WriteExcel(w io.Writer, report *campaign.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{barColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetRawData); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRawSheet(f, report, headerStyle); err != nil {
		return err
	}

	index, err := f.NewSheet(SheetCampaigns)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeCampaignSheet(f, report, headerStyle); err != nil {
		return err
	}
	f.SetActiveSheet(index)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, style)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
}

func writeRawSheet(f *excelize.File, report *campaign.Report, style int) error {
	extraColumns := extraColumnNames(report.Records)
	headers := append(campaign.RequiredColumns(), extraColumns...)
	writeHeader(f, SheetRawData, headers, style)

	for rowIdx, rec := range report.Records {
		values := []interface{}{
			rec.Campaign,
			rec.Product,
			rec.DemandValue,
			rec.StartDate.Format(excelDateFormat),
			rec.EndDate.Format(excelDateFormat),
		}
		for _, name := range extraColumns {
			values = append(values, rec.Extra[name])
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(SheetRawData, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
		}
	}
	return nil
}

func writeCampaignSheet(f *excelize.File, report *campaign.Report, style int) error {
	headers := []string{"Rang", campaign.ColumnCampaign, "Gesamte Nachfrage", "Produkte", "Start", "Ende"}
	writeHeader(f, SheetCampaigns, headers, style)

	for i, agg := range report.Campaigns() {
		values := []interface{}{
			i + 1,
			agg.Campaign,
			agg.TotalDemand,
			strings.Join(agg.Products, ", "),
			agg.StartDate.Format(excelDateFormat),
			agg.EndDate.Format(excelDateFormat),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetCampaigns, cell, &values); err != nil {
			return fmt.Errorf("failed to write campaign %q: %w", agg.Campaign, err)
		}
	}
	return nil
}

// extraColumnNames собирает имена дополнительных колонок в стабильном порядке
func extraColumnNames(records []campaign.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for name := range rec.Extra {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
