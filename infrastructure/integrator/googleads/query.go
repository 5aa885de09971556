package googleads

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

const (
	metricsPrefix = "metrics."
	DefaultLimit  = 50
	MaxLimit      = 10000
	DefaultStatus = "ENABLED"
)

// baseMetrics são sempre consultadas porque os campos derivados dependem delas
var baseMetrics = []string{
	"metrics.impressions",
	"metrics.clicks",
	"metrics.conversions",
	"metrics.cost_micros",
	"metrics.conversions_value",
}

var defaultMetrics = []string{
	"metrics.ctr",
	"metrics.average_cpc",
	"metrics.cost_per_conversion",
	"metrics.value_per_conversion",
}

var (
	identifierPattern  = regexp.MustCompile(`^[a-z_.]+$`)
	statusPattern      = regexp.MustCompile(`^[A-Z_]+$`)
	compactDatePattern = regexp.MustCompile(`^\d{8}$`)
)

type entityQuery struct {
	resource    string
	fields      []string
	statusField string
}

var entityQueries = map[domain.EntityType]entityQuery{
	domain.EntityKeyword: {
		resource: "keyword_view",
		fields: []string{
			"campaign.id", "campaign.name", "ad_group.id", "ad_group.name",
			"ad_group_criterion.criterion_id", "ad_group_criterion.keyword.text",
			"ad_group_criterion.keyword.match_type", "ad_group_criterion.status",
		},
		statusField: "ad_group_criterion.status",
	},
	domain.EntityCampaign: {
		resource:    "campaign",
		fields:      []string{"campaign.id", "campaign.name", "campaign.status"},
		statusField: "campaign.status",
	},
	domain.EntityAdGroup: {
		resource:    "ad_group",
		fields:      []string{"campaign.id", "campaign.name", "ad_group.id", "ad_group.name", "ad_group.status"},
		statusField: "ad_group.status",
	},
}

// NormalizeMetrics prefixa nomes simples com "metrics.", descarta vazios e duplicados
func NormalizeMetrics(metrics []string) ([]string, error) {
	normalized := make([]string, 0, len(metrics))
	seen := make(map[string]struct{}, len(metrics))

	for _, metric := range metrics {
		metric = strings.TrimSpace(metric)
		if metric == "" {
			continue
		}

		if !strings.HasPrefix(metric, metricsPrefix) {
			metric = metricsPrefix + metric
		}

		if !identifierPattern.MatchString(metric) {
			return nil, domain.NewValidationError("metrics", fmt.Sprintf("métrica inválida %q", metric))
		}

		if _, ok := seen[metric]; ok {
			continue
		}
		seen[metric] = struct{}{}
		normalized = append(normalized, metric)
	}

	return normalized, nil
}

// DateCondition traduz o intervalo para a sintaxe de data da GAQL
func DateCondition(filters domain.MetricsFilters, now time.Time) (string, error) {
	dateRange := filters.DateRange
	if dateRange == "" {
		dateRange = domain.DateRangeLast30Days
	}

	switch dateRange {
	case domain.DateRangeLast7Days, domain.DateRangeLast14Days, domain.DateRangeLast30Days:
		return fmt.Sprintf("segments.date DURING %s", dateRange), nil

	case domain.DateRangeLast90Days:
		// DURING não aceita LAST_90_DAYS
		end := now.AddDate(0, 0, -1)
		start := now.AddDate(0, 0, -90)
		return fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'",
			start.Format(utils.CompactDateLayout), end.Format(utils.CompactDateLayout)), nil

	case domain.DateRangeCustom:
		if filters.StartDate == "" || filters.EndDate == "" {
			return "", domain.NewValidationError("dateRange", "CUSTOM exige startDate e endDate")
		}
		start, err := compactDate(filters.StartDate)
		if err != nil {
			return "", domain.NewValidationError("startDate", "data inválida")
		}
		end, err := compactDate(filters.EndDate)
		if err != nil {
			return "", domain.NewValidationError("endDate", "data inválida")
		}
		return BetweenDates(start, end), nil
	}

	return "", domain.NewValidationError("dateRange", fmt.Sprintf("intervalo desconhecido %q", dateRange))
}

func BetweenDates(compactStart, compactEnd string) string {
	return fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'", compactStart, compactEnd)
}

func compactDate(date string) (string, error) {
	if compactDatePattern.MatchString(date) {
		return date, nil
	}
	return utils.CompactDate(date)
}

// StatusCondition usa ENABLED quando nenhum status é informado
func StatusCondition(field string, statuses []string) (string, error) {
	quoted := make([]string, 0, len(statuses))
	for _, status := range statuses {
		status = strings.ToUpper(strings.TrimSpace(status))
		if status == "" {
			continue
		}
		if !statusPattern.MatchString(status) {
			return "", domain.NewValidationError("keywordStatus", fmt.Sprintf("status inválido %q", status))
		}
		quoted = append(quoted, "'"+status+"'")
	}

	if len(quoted) == 0 {
		quoted = append(quoted, "'"+DefaultStatus+"'")
	}

	return fmt.Sprintf("%s IN (%s)", field, strings.Join(quoted, ", ")), nil
}

func queryLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// selectedMetrics combina as métricas base com as pedidas (ou as padrão)
func selectedMetrics(requested []string) ([]string, error) {
	normalized, err := NormalizeMetrics(requested)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		normalized = defaultMetrics
	}

	return NormalizeMetrics(append(append([]string{}, baseMetrics...), normalized...))
}

// BuildEntityQuery monta a GAQL de keywords, campanhas ou grupos de anúncios
func BuildEntityQuery(entity domain.EntityType, filters domain.MetricsFilters, now time.Time) (string, error) {
	spec, ok := entityQueries[entity]
	if !ok {
		return "", domain.NewValidationError("entity", fmt.Sprintf("entidade não suportada %q", entity))
	}

	metrics, err := selectedMetrics(filters.Metrics)
	if err != nil {
		return "", err
	}

	dateCondition, err := DateCondition(filters, now)
	if err != nil {
		return "", err
	}

	statusCondition, err := StatusCondition(spec.statusField, filters.Status)
	if err != nil {
		return "", err
	}

	fields := append(append([]string{}, spec.fields...), metrics...)

	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s AND %s ORDER BY metrics.impressions DESC LIMIT %d",
		strings.Join(fields, ", "),
		spec.resource,
		dateCondition,
		statusCondition,
		queryLimit(filters.Limit),
	), nil
}

// BuildDailyQuery monta a GAQL segmentada por dia, no nível da conta ou das campanhas
func BuildDailyQuery(entity domain.EntityType, startDate, endDate string, metrics []string) (string, error) {
	start, err := compactDate(startDate)
	if err != nil {
		return "", domain.NewValidationError("startDate", "data inválida")
	}
	end, err := compactDate(endDate)
	if err != nil {
		return "", domain.NewValidationError("endDate", "data inválida")
	}

	selected, err := selectedMetrics(metrics)
	if err != nil {
		return "", err
	}

	var fields []string
	var resource string
	switch entity {
	case domain.EntityAccount, "":
		fields = []string{"customer.id", "customer.descriptive_name", "segments.date"}
		resource = "customer"
	case domain.EntityCampaign:
		fields = []string{"campaign.id", "campaign.name", "campaign.status", "segments.date"}
		resource = "campaign"
	default:
		return "", domain.NewValidationError("entityType", fmt.Sprintf("entidade diária não suportada %q", entity))
	}

	fields = append(fields, selected...)

	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY segments.date ASC",
		strings.Join(fields, ", "),
		resource,
		BetweenDates(start, end),
	), nil
}
