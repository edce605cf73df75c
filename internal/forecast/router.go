package forecast

import (
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

// Data quality labels reported with each forecast.
const (
	QualityPremium     = "Premium"
	QualityStandard    = "Standard"
	QualityGood        = "Good"
	QualityBasic       = "Basic"
	QualityUnavailable = "Unavailable"

	qualityMarineDown = "Limited - Marine Data Unavailable"
	aiDownSuffix      = " - AI Unavailable"
)

type plan struct {
	forecastType models.ForecastType
	quality      string
}

// choosePlan picks the forecast type from the caller's preference and the
// configured keys. Nothing beyond basic works without the weather key.
func choosePlan(preferred models.ForecastType, creds config.Credentials) plan {
	marineQuality := QualityStandard
	if creds.HasGlobalMarine() {
		marineQuality = QualityPremium
	}

	if creds.HasBaseline() {
		switch preferred {
		case models.ForecastMarine:
			return plan{models.ForecastMarine, marineQuality}
		case models.ForecastEnhanced:
			return plan{models.ForecastEnhanced, QualityGood}
		case models.ForecastBasic:
			return plan{models.ForecastBasic, QualityBasic}
		}
		if creds.HasGlobalMarine() {
			return plan{models.ForecastMarine, QualityPremium}
		}
		return plan{models.ForecastEnhanced, QualityGood}
	}
	return plan{models.ForecastBasic, QualityBasic}
}
