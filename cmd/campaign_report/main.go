package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"campaigninsights/database"
	"campaigninsights/importer"
	"campaigninsights/internal/config"
	"campaigninsights/internal/container"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/reporting"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run выполняет отчет и возвращает код завершения
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("campaign_report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filePath := fs.String("file", "", "CSV или XLSX файл с данными кампаний")
	xlsxPath := fs.String("xlsx", "", "сохранить отчет в XLSX файл")
	withInsights := fs.Bool("insights", false, "сгенерировать инсайты для всех кампаний")
	year := fs.Int("year", 0, "год для дат вида 15-Mar (по умолчанию из конфигурации)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *filePath == "" {
		fmt.Fprintln(stderr, "Использование: campaign_report -file data.csv [-xlsx report.xlsx] [-insights] [-year 2025]")
		return 2
	}

	cfg, err := loadConfig(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Ошибка конфигурации: %v\n", err)
		return 1
	}
	if *year > 0 {
		cfg.ReferenceYear = *year
	}

	c, err := container.NewContainer(cfg, slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	if err != nil {
		fmt.Fprintf(stderr, "Ошибка инициализации: %v\n", err)
		return 1
	}

	f, err := os.Open(*filePath)
	if err != nil {
		fmt.Fprintf(stderr, "Не удалось открыть файл: %v\n", err)
		return 1
	}
	defer f.Close()

	table, err := importer.ReadFile(filepath.Base(*filePath), f)
	if err != nil {
		fmt.Fprintf(stderr, "Не удалось прочитать файл: %v\n", err)
		return 1
	}

	report, err := campaign.Analyze(table, c.Normalizer)
	if err != nil {
		printAnalyzeError(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "Файл: %s, строк: %d, кампаний: %d\n\n", *filePath, len(report.Records), len(report.Ranking))
	printRanking(stdout, report)

	if *withInsights {
		fmt.Fprintf(stdout, "\nИнсайты (%s):\n", c.Summarizer.Source())
		for _, ins := range c.Summarizer.SummarizeAll(context.Background(), report) {
			fmt.Fprintf(stdout, "\n[%s]\n%s\n", ins.Campaign, ins.Text)
		}
	}

	if *xlsxPath != "" {
		if err := writeWorkbook(*xlsxPath, report); err != nil {
			fmt.Fprintf(stderr, "Не удалось сохранить отчет: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "\nОтчет сохранен: %s\n", *xlsxPath)
	}

	return 0
}

// loadConfig читает конфигурацию и применяет ключ доступа, сохраненный в сервисной БД
func loadConfig(stderr io.Writer) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	serviceDB, err := database.NewServiceDB(cfg.ServiceDatabasePath)
	if err != nil {
		fmt.Fprintf(stderr, "Сервисная БД недоступна (%s), ключ из БД не используется: %v\n", cfg.ServiceDatabasePath, err)
		return cfg, nil
	}
	defer serviceDB.Close()

	return config.LoadConfig(serviceDB)
}

func printAnalyzeError(w io.Writer, err error) {
	var missing *campaign.MissingColumnsError
	if errors.As(err, &missing) {
		fmt.Fprintf(w, "Ошибка проверки столбцов: %v\n", missing)
		return
	}
	fmt.Fprintf(w, "Ошибка обработки данных: %v\n", err)
}

func printRanking(w io.Writer, report *campaign.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rang\tCampaign\tDemand\tProdukte\tStart\tEnde")
	for i, agg := range report.Campaigns() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			agg.Campaign,
			strconv.FormatFloat(agg.TotalDemand, 'f', -1, 64),
			strings.Join(agg.Products, ", "),
			agg.StartDate.Format("02.01.2006"),
			agg.EndDate.Format("02.01.2006"),
		)
	}
	tw.Flush()
}

func writeWorkbook(path string, report *campaign.Report) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := reporting.WriteExcel(out, report); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
