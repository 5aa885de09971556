package domain

// SearchRequest é o corpo de googleAds:search
type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []GoogleAdsRow `json:"results"`
	NextPageToken string         `json:"nextPageToken"`
}

type ListAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

// GoogleAdsRow segue o formato camelCase da API REST
type GoogleAdsRow struct {
	Customer         *Customer         `json:"customer,omitempty"`
	Campaign         *Campaign         `json:"campaign,omitempty"`
	AdGroup          *AdGroup          `json:"adGroup,omitempty"`
	AdGroupCriterion *AdGroupCriterion `json:"adGroupCriterion,omitempty"`
	Metrics          *Metrics          `json:"metrics,omitempty"`
	Segments         *Segments         `json:"segments,omitempty"`
}

type Customer struct {
	ID              Number `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	CurrencyCode    string `json:"currencyCode"`
	TimeZone        string `json:"timeZone"`
	Manager         bool   `json:"manager"`
	TestAccount     bool   `json:"testAccount"`
}

type Campaign struct {
	ID     Number `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type AdGroup struct {
	ID     Number `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type AdGroupCriterion struct {
	CriterionID Number   `json:"criterionId"`
	Status      string   `json:"status"`
	Keyword     *Keyword `json:"keyword,omitempty"`
}

type Keyword struct {
	Text      string `json:"text"`
	MatchType string `json:"matchType"`
}

// Metrics chega com valores monetários em micros
type Metrics struct {
	Impressions        Number `json:"impressions"`
	Clicks             Number `json:"clicks"`
	Conversions        Number `json:"conversions"`
	CostMicros         Number `json:"costMicros"`
	Ctr                Number `json:"ctr"`
	AverageCpc         Number `json:"averageCpc"`
	CostPerConversion  Number `json:"costPerConversion"`
	ConversionsValue   Number `json:"conversionsValue"`
	ValuePerConversion Number `json:"valuePerConversion"`
}

type Segments struct {
	Date string `json:"date"`
}
