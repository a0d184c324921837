package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"campaigninsights/internal/domain/campaign"
)

const dateLayout = "2-Jan"

var channels = []string{"Email", "Social", "Search", "Display", "TV"}

func main() {
	rows := flag.Int("rows", 100, "количество строк")
	campaigns := flag.Int("campaigns", 5, "количество кампаний")
	out := flag.String("out", "campaigns.csv", "выходной CSV файл, - для stdout")
	seed := flag.Int64("seed", 0, "seed генератора, 0 - случайный")
	year := flag.Int("year", campaign.DefaultReferenceYear, "год, в пределах которого лежат даты")
	flag.Parse()

	if *rows < 1 || *campaigns < 1 {
		log.Fatalf("rows и campaigns должны быть больше 0")
	}

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Не удалось создать файл: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := generate(w, *rows, *campaigns, *year, *seed); err != nil {
		log.Fatalf("Ошибка генерации: %v", err)
	}
	if *out != "-" {
		log.Printf("Сгенерировано %d строк для %d кампаний: %s", *rows, *campaigns, *out)
	}
}

// generate пишет CSV с обязательными столбцами и дополнительным столбцом Channel.
// Даты начала и окончания лежат в пределах одного года.
func generate(w io.Writer, rows, campaigns, year int, seed int64) error {
	faker := gofakeit.New(seed)

	names := make([]string, campaigns)
	for i := range names {
		names[i] = fmt.Sprintf("%s %d", faker.BuzzWord(), i+1)
	}

	writer := csv.NewWriter(w)
	header := append(campaign.RequiredColumns(), "Channel")
	if err := writer.Write(header); err != nil {
		return err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < rows; i++ {
		start := faker.DateRange(yearStart, yearEnd.AddDate(0, 0, -1)).Truncate(24 * time.Hour)
		end := start.AddDate(0, 0, faker.Number(1, 60))
		if end.After(yearEnd) {
			end = yearEnd
		}

		record := []string{
			names[faker.Number(0, campaigns-1)],
			faker.Numerify("SKU-####"),
			strconv.Itoa(faker.Number(100, 20000)),
			start.Format(dateLayout),
			end.Format(dateLayout),
			faker.RandomString(channels),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
