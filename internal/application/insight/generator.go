package insight

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Источники текста инсайта
const (
	SourceExternal = "external"
	SourceTemplate = "template"
)

// Generator создает текст инсайта по фактам кампании
type Generator interface {
	Generate(ctx context.Context, facts Facts) (string, error)
	// Source возвращает тип генератора: external или template
	Source() string
}

// CompletionClient клиент внешней модели генерации текста
type CompletionClient interface {
	GetCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GetProviderName() string
}

// ExternalGenerator отправляет факты во внешнюю модель
type ExternalGenerator struct {
	client CompletionClient
}

// NewExternalGenerator создает генератор поверх клиента модели
func NewExternalGenerator(client CompletionClient) *ExternalGenerator {
	return &ExternalGenerator{client: client}
}

// Generate выполняет запрос к модели и возвращает ответ без пробелов по краям
func (g *ExternalGenerator) Generate(ctx context.Context, facts Facts) (string, error) {
	text, err := g.client.GetCompletion(ctx, SystemPrompt, BuildPrompt(facts))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s returned an empty response", g.client.GetProviderName())
	}
	return text, nil
}

func (g *ExternalGenerator) Source() string { return SourceExternal }

// TemplateGenerator детерминированный генератор без внешних вызовов
type TemplateGenerator struct {
	printer *message.Printer
}

// NewTemplateGenerator создает шаблонный генератор с немецким форматированием чисел
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{printer: message.NewPrinter(language.German)}
}

// FormatDemand форматирует спрос с разделителями тысяч: 15000 -> "15.000"
func (g *TemplateGenerator) FormatDemand(v float64) string {
	return g.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func (g *TemplateGenerator) Generate(_ context.Context, f Facts) (string, error) {
	return fmt.Sprintf(
		"Die Kampagne „%s“ erreichte vom %s bis %s eine Gesamtnachfrage von %s mit den Produkten %s. "+
			"Empfehlung: Budget auf die nachfragestärksten Produkte konzentrieren und die Laufzeit an der Nachfrageentwicklung ausrichten.",
		f.Campaign, f.Start, f.End, g.FormatDemand(f.TotalDemand), f.Products,
	), nil
}

func (g *TemplateGenerator) Source() string { return SourceTemplate }

// SelectGenerator выбирает реализацию при создании: без клиента используется шаблон
func SelectGenerator(client CompletionClient) Generator {
	if client == nil {
		return NewTemplateGenerator()
	}
	return NewExternalGenerator(client)
}
