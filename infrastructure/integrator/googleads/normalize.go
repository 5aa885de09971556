package googleads

import (
	adsdomain "github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

const microsPerUnit = 1_000_000

// FactoryMetricsRow converte uma linha da API em valores de moeda e calcula os campos derivados.
// Todos os denominadores não positivos resultam em 0.
func FactoryMetricsRow(row adsdomain.GoogleAdsRow) *domain.MetricsRow {
	result := &domain.MetricsRow{}

	if row.Campaign != nil {
		result.CampaignID = row.Campaign.ID.String()
		result.CampaignName = row.Campaign.Name
		result.Status = row.Campaign.Status
	}

	if row.AdGroup != nil {
		result.AdGroupID = row.AdGroup.ID.String()
		result.AdGroupName = row.AdGroup.Name
		result.Status = row.AdGroup.Status
	}

	if criterion := row.AdGroupCriterion; criterion != nil {
		result.CriterionID = criterion.CriterionID.String()
		result.Status = criterion.Status
		if criterion.Keyword != nil {
			result.KeywordText = criterion.Keyword.Text
			result.MatchType = criterion.Keyword.MatchType
		}
	}

	if row.Metrics == nil {
		return result
	}

	m := row.Metrics
	impressions := m.Impressions.Float64()
	clicks := m.Clicks.Float64()
	conversions := m.Conversions.Float64()
	costMicros := m.CostMicros.Float64()
	conversionValue := m.ConversionsValue.Float64()

	result.Impressions = m.Impressions.Int64()
	result.Clicks = m.Clicks.Int64()
	result.Conversions = conversions
	result.CostMicros = m.CostMicros.Int64()
	result.Ctr = m.Ctr.Float64()

	result.Cost = costMicros / microsPerUnit
	result.AverageCpc = m.AverageCpc.Float64() / microsPerUnit
	result.CostPerConversion = m.CostPerConversion.Float64() / microsPerUnit
	result.ConversionValue = conversionValue / microsPerUnit
	result.ValuePerConversion = m.ValuePerConversion.Float64() / microsPerUnit

	if clicks > 0 && conversions > 0 {
		result.ConversionRate = conversions / clicks
	}
	result.Roas = utils.SafeDivide(conversionValue, costMicros)
	result.Romi = utils.SafeDivide(conversionValue-costMicros, costMicros) * 100
	result.Cpm = utils.SafeDivide(costMicros, impressions) * 1000 / microsPerUnit

	return result
}
