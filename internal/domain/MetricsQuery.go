package domain

type EntityType string

const (
	EntityKeyword  EntityType = "keyword"
	EntityCampaign EntityType = "campaign"
	EntityAdGroup  EntityType = "ad_group"
	EntityAccount  EntityType = "account"
)

type DateRange string

const (
	DateRangeLast7Days  DateRange = "LAST_7_DAYS"
	DateRangeLast14Days DateRange = "LAST_14_DAYS"
	DateRangeLast30Days DateRange = "LAST_30_DAYS"
	DateRangeLast90Days DateRange = "LAST_90_DAYS"
	DateRangeCustom     DateRange = "CUSTOM"
)

func (d DateRange) IsValid() bool {
	switch d {
	case DateRangeLast7Days, DateRangeLast14Days, DateRangeLast30Days, DateRangeLast90Days, DateRangeCustom:
		return true
	}
	return false
}

// MetricsFilters são os filtros aceitos pelos endpoints de keywords, campanhas e grupos de anúncios.
// StartDate e EndDate usam o formato YYYY-MM-DD e só são obrigatórios com DateRange CUSTOM.
type MetricsFilters struct {
	Metrics   []string  `json:"metrics,omitempty"`
	DateRange DateRange `json:"dateRange,omitempty"`
	StartDate string    `json:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty"`
	Status    []string  `json:"keywordStatus,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

type MetricsRequest struct {
	AccountID string         `json:"accountId" validate:"required"`
	Filters   MetricsFilters `json:"filters"`
}

// MetricsRow é uma linha normalizada (valores monetários já em unidades de moeda)
type MetricsRow struct {
	CampaignID   string `json:"campaign_id,omitempty"`
	CampaignName string `json:"campaign_name,omitempty"`
	AdGroupID    string `json:"ad_group_id,omitempty"`
	AdGroupName  string `json:"ad_group_name,omitempty"`
	CriterionID  string `json:"criterion_id,omitempty"`
	KeywordText  string `json:"keyword_text,omitempty"`
	MatchType    string `json:"match_type,omitempty"`
	Status       string `json:"status,omitempty"`

	Impressions        int64   `json:"impressions"`
	Clicks             int64   `json:"clicks"`
	Conversions        float64 `json:"conversions"`
	CostMicros         int64   `json:"cost_micros"`
	Cost               float64 `json:"cost"`
	Ctr                float64 `json:"ctr"`
	AverageCpc         float64 `json:"average_cpc"`
	CostPerConversion  float64 `json:"cost_per_conversion"`
	ConversionValue    float64 `json:"conversion_value"`
	ValuePerConversion float64 `json:"value_per_conversion"`
	ConversionRate     float64 `json:"conversion_rate"`
	Roas               float64 `json:"roas"`
	Romi               float64 `json:"romi"`
	Cpm                float64 `json:"cpm"`
}

// MetricsResult é o envelope devolvido pelo executor e pela camada de cache
type MetricsResult struct {
	Rows      []*MetricsRow `json:"rows"`
	Cached    bool          `json:"cached"`
	FetchedAt string        `json:"fetched_at"`
}

type AccountMetricsRequest struct {
	AccountID string   `json:"accountId" validate:"required"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	// aceito por compatibilidade; o agregado sempre traz as métricas base
	Metrics   []string `json:"metrics,omitempty"`
}

// AccountMetrics é o agregado de uma conta em um período. Ctr e ConversionRate são percentuais.
type AccountMetrics struct {
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	Conversions    float64 `json:"conversions"`
	Spend          float64 `json:"spend"`
	Ctr            float64 `json:"ctr"`
	Cpm            float64 `json:"cpm"`
	ConversionRate float64 `json:"conversion_rate"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
}

// DailyMetricsRow é uma linha segmentada por dia devolvida pela API
type DailyMetricsRow struct {
	Date       string
	EntityType EntityType
	EntityID   string
	EntityName string
	Metrics    *MetricsRow
}
