package insight

import (
	"strconv"
	"strings"

	"campaigninsights/internal/domain/campaign"
)

// dateFormat формат дат в тексте запроса и шаблоне
const dateFormat = "02.01.2006"

// Facts сжатый набор фактов о кампании, из которого строится запрос
type Facts struct {
	Campaign    string  `json:"campaign"`
	Products    string  `json:"products"` // через запятую
	TotalDemand float64 `json:"total_demand"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
}

// BuildFacts собирает факты по агрегату кампании
func BuildFacts(agg *campaign.CampaignAggregate) Facts {
	return Facts{
		Campaign:    agg.Campaign,
		Products:    strings.Join(agg.Products, ", "),
		TotalDemand: agg.TotalDemand,
		Start:       agg.StartDate.Format(dateFormat),
		End:         agg.EndDate.Format(dateFormat),
	}
}

// SystemPrompt роль модели
const SystemPrompt = "Du bist ein Marketing-Analyst."

// BuildPrompt формирует пользовательский запрос к модели
func BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("Du bist ein Marketing-Analyst. Analysiere folgende Kampagnendaten:\n")
	b.WriteString("Kampagne: " + f.Campaign + "\n")
	b.WriteString("Produkte: " + f.Products + "\n")
	b.WriteString("Gesamte Nachfrage (Demand Value): " + strconv.FormatFloat(f.TotalDemand, 'f', -1, 64) + "\n")
	b.WriteString("Laufzeit: " + f.Start + " bis " + f.End + "\n\n")
	b.WriteString("Gib eine klare, kurze Zusammenfassung + Optimierungsempfehlung für das Marketing-Team.")
	return b.String()
}
