package models

type ForecastType string

const (
	ForecastAuto     ForecastType = "auto"
	ForecastBasic    ForecastType = "basic"
	ForecastEnhanced ForecastType = "enhanced"
	ForecastMarine   ForecastType = "marine"
	ForecastFallback ForecastType = "fallback"
)

// ParseForecastType maps user input to a known type. Unknown or empty
// values mean auto.
func ParseForecastType(s string) ForecastType {
	switch ForecastType(s) {
	case ForecastBasic, ForecastEnhanced, ForecastMarine:
		return ForecastType(s)
	default:
		return ForecastAuto
	}
}

type ForecastRequest struct {
	Location              string       `json:"location"`
	PreferredForecastType ForecastType `json:"preferredForecastType,omitempty"`
}

type MarineData struct {
	WaveHeight            float64    `json:"waveHeight"`
	PrimarySwellHeight    float64    `json:"primarySwellHeight"`
	PrimarySwellPeriod    float64    `json:"primarySwellPeriod"`
	PrimarySwellDirection float64    `json:"primarySwellDirection"`
	WindSpeed             float64    `json:"windSpeed"`
	WindDirection         float64    `json:"windDirection"`
	DataSource            DataSource `json:"dataSource"`
}

type SpotInfo struct {
	Name              string     `json:"name"`
	Type              BreakType  `json:"type"`
	Difficulty        Difficulty `json:"difficulty"`
	OptimalConditions string     `json:"optimalConditions"`
}

// ForecastResponse is the unified answer returned for every forecast type.
type ForecastResponse struct {
	Location         string       `json:"location"`
	Conditions       string       `json:"conditions"`
	Recommendation   string       `json:"recommendation"`
	WindConditions   string       `json:"windConditions"`
	WeatherSummary   string       `json:"weatherSummary"`
	SurfabilityScore int          `json:"surfabilityScore"`
	SurfQuality      *SurfQuality `json:"surfQuality,omitempty"`
	MarineData       *MarineData  `json:"marineData,omitempty"`
	SpotInfo         *SpotInfo    `json:"spotInfo,omitempty"`
	ForecastType     ForecastType `json:"forecastType"`
	DataQuality      string       `json:"dataQuality"`
	APICostsUsed     bool         `json:"apiCostsUsed"`
}
