package reporting

import (
	"fmt"
	"strings"

	"github.com/osteele/liquid"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

const subjectTemplate = `Resumo {{ frequency_label }} do Google Ads: {{ account_name }}`

const htmlTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; color: #202124;">
  <h2>Olá, {{ name | default: "tudo bem" | escape }}!</h2>
  <p>Este é o resumo {{ frequency_label }} da conta <strong>{{ account_name | escape }}</strong>
     de {{ period_start }} a {{ period_end }}.</p>
  <table cellpadding="8" style="border-collapse: collapse;">
    {% for row in rows %}
    <tr>
      <td style="border-bottom: 1px solid #e0e0e0;">{{ row.label | escape }}</td>
      <td style="border-bottom: 1px solid #e0e0e0; text-align: right;"><strong>{{ row.value | escape }}</strong></td>
    </tr>
    {% endfor %}
  </table>
  {% if spend > 0 %}<p>Investimento total no período: {{ spend | money: currency | escape }}</p>{% endif %}
</body>
</html>`

const textTemplate = `Resumo {{ frequency_label }} da conta {{ account_name }} ({{ period_start }} a {{ period_end }})
{% for row in rows %}- {{ row.label }}: {{ row.value }}
{% endfor %}`

var frequencyLabels = map[domain.Frequency]string{
	domain.FrequencyDaily:   "diário",
	domain.FrequencyWeekly:  "semanal",
	domain.FrequencyMonthly: "mensal",
}

// Ordem de exibição das métricas do resumo
var metricOrder = []string{"impressions", "clicks", "ctr", "conversions", "conversion_rate", "spend", "cpm"}

var metricLabels = map[string]string{
	"impressions":     "Impressões",
	"clicks":          "Cliques",
	"ctr":             "CTR",
	"conversions":     "Conversões",
	"conversion_rate": "Taxa de conversão",
	"spend":           "Investimento",
	"cpm":             "CPM",
}

// Sinônimos aceitos em selected_metrics
var metricAliases = map[string]string{
	"cost":        "spend",
	"cost_micros": "spend",
}

type Renderer struct {
	subject *liquid.Template
	html    *liquid.Template
	text    *liquid.Template
}

type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()

	// {{ spend | money: "BRL" }}
	engine.RegisterFilter("money", func(value float64, currency string) string {
		if currency == "" {
			return fmt.Sprintf("%.2f", value)
		}
		return fmt.Sprintf("%s %.2f", currency, value)
	})

	templates := make([]*liquid.Template, 0, 3)
	for _, source := range []string{subjectTemplate, htmlTemplate, textTemplate} {
		tpl, err := engine.ParseString(source)
		if err != nil {
			return nil, fmt.Errorf("erro ao compilar template do resumo: %w", err)
		}
		templates = append(templates, tpl)
	}

	return &Renderer{
		subject: templates[0],
		html:    templates[1],
		text:    templates[2],
	}, nil
}

// SummaryData é o conteúdo de um resumo de insights
type SummaryData struct {
	Name        string
	AccountName string
	Currency    string
	Frequency   domain.Frequency
	StartDate   string
	EndDate     string
	Metrics     *domain.AccountMetrics
	Selected    []string
}

func (r *Renderer) Render(data SummaryData) (*RenderedEmail, error) {
	bindings := map[string]any{
		"name":            data.Name,
		"account_name":    data.AccountName,
		"currency":        data.Currency,
		"frequency_label": frequencyLabels[data.Frequency],
		"period_start":    data.StartDate,
		"period_end":      data.EndDate,
		"spend":           data.Metrics.Spend,
		"rows":            metricRows(data.Metrics, data.Selected),
	}

	subject, err := r.subject.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("erro ao renderizar assunto: %w", err)
	}

	html, err := r.html.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("erro ao renderizar corpo html: %w", err)
	}

	text, err := r.text.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("erro ao renderizar corpo texto: %w", err)
	}

	return &RenderedEmail{
		Subject: strings.TrimSpace(subject),
		HTML:    html,
		Text:    text,
	}, nil
}

// metricRows monta as linhas na ordem fixa; sem seleção válida mostra todas
func metricRows(metrics *domain.AccountMetrics, selected []string) []map[string]any {
	wanted := make(map[string]bool, len(selected))
	for _, metric := range selected {
		name := strings.TrimPrefix(strings.TrimSpace(metric), "metrics.")
		if alias, ok := metricAliases[name]; ok {
			name = alias
		}
		if _, known := metricLabels[name]; known {
			wanted[name] = true
		}
	}

	values := map[string]string{
		"impressions":     fmt.Sprintf("%d", metrics.Impressions),
		"clicks":          fmt.Sprintf("%d", metrics.Clicks),
		"ctr":             fmt.Sprintf("%.2f%%", metrics.Ctr),
		"conversions":     fmt.Sprintf("%.2f", metrics.Conversions),
		"conversion_rate": fmt.Sprintf("%.2f%%", metrics.ConversionRate),
		"spend":           fmt.Sprintf("%.2f", metrics.Spend),
		"cpm":             fmt.Sprintf("%.2f", metrics.Cpm),
	}

	rows := make([]map[string]any, 0, len(metricOrder))
	for _, name := range metricOrder {
		if len(wanted) > 0 && !wanted[name] {
			continue
		}
		rows = append(rows, map[string]any{
			"label": metricLabels[name],
			"value": values[name],
		})
	}
	return rows
}
