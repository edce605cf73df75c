package spot

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

type entry struct {
	key  string
	spot models.SpotConfiguration
}

// builtinSpots is ordered; the first match wins.
var builtinSpots = []entry{
	{
		key: "malibu",
		spot: models.SpotConfiguration{
			Name:                  "Malibu",
			Type:                  models.PointBreak,
			Aspect:                225,
			OptimalWaveHeight:     models.Range{Min: 1.0, Max: 2.5},
			OptimalSwellDirection: models.Range{Min: 200, Max: 280},
			Difficulty:            models.Intermediate,
		},
	},
	{
		key: "trestles",
		spot: models.SpotConfiguration{
			Name:                  "Trestles",
			Type:                  models.BeachBreak,
			Aspect:                225,
			OptimalWaveHeight:     models.Range{Min: 1.5, Max: 3.0},
			OptimalSwellDirection: models.Range{Min: 180, Max: 270},
			Difficulty:            models.Advanced,
		},
	},
	{
		key: "bondi",
		spot: models.SpotConfiguration{
			Name:                  "Bondi Beach",
			Type:                  models.BeachBreak,
			Aspect:                90,
			OptimalWaveHeight:     models.Range{Min: 1.0, Max: 2.0},
			OptimalSwellDirection: models.Range{Min: 45, Max: 135},
			Difficulty:            models.Beginner,
		},
	},
}

type regionalDefault struct {
	countries []string
	hints     []string
	spot      models.SpotConfiguration
}

// regionalDefaults are checked in order after the registry misses. The
// spot name is replaced with the caller's location.
var regionalDefaults = []regionalDefault{
	{
		countries: []string{"AU"},
		hints:     []string{"australia", "bondi"},
		spot: models.SpotConfiguration{
			Type:                  models.BeachBreak,
			Aspect:                90,
			OptimalWaveHeight:     models.Range{Min: 1.0, Max: 2.5},
			OptimalSwellDirection: models.Range{Min: 45, Max: 135},
			Difficulty:            models.Intermediate,
		},
	},
	{
		countries: []string{"US"},
		hints:     []string{"california", "malibu"},
		spot: models.SpotConfiguration{
			Type:                  models.PointBreak,
			Aspect:                225,
			OptimalWaveHeight:     models.Range{Min: 1.5, Max: 3.0},
			OptimalSwellDirection: models.Range{Min: 200, Max: 280},
			Difficulty:            models.Intermediate,
		},
	},
	{
		countries: []string{"FR", "ES", "PT"},
		hints:     []string{"europe"},
		spot: models.SpotConfiguration{
			Type:                  models.BeachBreak,
			Aspect:                270,
			OptimalWaveHeight:     models.Range{Min: 1.2, Max: 2.8},
			OptimalSwellDirection: models.Range{Min: 225, Max: 315},
			Difficulty:            models.Intermediate,
		},
	},
	{
		countries: []string{"BR"},
		hints:     []string{"brazil", "rio"},
		spot: models.SpotConfiguration{
			Type:                  models.BeachBreak,
			Aspect:                120,
			OptimalWaveHeight:     models.Range{Min: 1.0, Max: 2.2},
			OptimalSwellDirection: models.Range{Min: 90, Max: 180},
			Difficulty:            models.Beginner,
		},
	},
}

var genericDefault = models.SpotConfiguration{
	Type:                  models.BeachBreak,
	Aspect:                180,
	OptimalWaveHeight:     models.Range{Min: 1.0, Max: 2.5},
	OptimalSwellDirection: models.Range{Min: 135, Max: 225},
	Difficulty:            models.Intermediate,
}

// Resolver maps free-text locations to spot configurations. It is safe for
// concurrent use; the registry is fixed at construction.
type Resolver struct {
	registry []entry
}

// NewResolver builds a resolver over the built-in spots followed by extra,
// in the order given. Extra spots never shadow a built-in.
func NewResolver(extra ...models.SpotConfiguration) *Resolver {
	registry := make([]entry, 0, len(builtinSpots)+len(extra))
	registry = append(registry, builtinSpots...)
	for _, s := range extra {
		registry = append(registry, entry{key: strings.ToLower(s.Name), spot: s})
	}
	return &Resolver{registry: registry}
}

// Resolve never fails: a registry hit wins, then regional defaults keyed by
// country or location hints, then a generic south-facing beach break.
func (r *Resolver) Resolve(location, countryCode string) models.SpotConfiguration {
	query := strings.ToLower(strings.TrimSpace(location))
	country := strings.ToUpper(strings.TrimSpace(countryCode))

	if query != "" {
		for _, e := range r.registry {
			name := strings.ToLower(e.spot.Name)
			if strings.Contains(query, e.key) || strings.Contains(name, query) || strings.Contains(query, name) {
				log.Debug().Str("location", location).Str("spot", e.spot.Name).Msg("Matched registered spot")
				return e.spot
			}
		}
	}

	for _, rd := range regionalDefaults {
		if matchesRegion(rd, query, country) {
			spot := rd.spot
			spot.Name = location
			log.Debug().Str("location", location).Str("country", country).Msg("Using regional spot defaults")
			return spot
		}
	}

	spot := genericDefault
	spot.Name = location
	return spot
}

// Len reports how many spots are registered.
func (r *Resolver) Len() int {
	return len(r.registry)
}

func matchesRegion(rd regionalDefault, query, country string) bool {
	for _, c := range rd.countries {
		if country == c {
			return true
		}
	}
	for _, h := range rd.hints {
		if query != "" && strings.Contains(query, h) {
			return true
		}
	}
	return false
}
