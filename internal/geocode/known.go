package geocode

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

type knownSpot struct {
	name    string
	city    string
	country string
	lat     float64
	lon     float64
}

// knownSpots holds breaks that city geocoders tend not to know by name.
var knownSpots = []knownSpot{
	// California
	{name: "Malibu", city: "Malibu", country: "US", lat: 34.0259, lon: -118.7798},
	{name: "Huntington Beach", city: "Huntington Beach", country: "US", lat: 33.6595, lon: -117.9988},
	{name: "Manhattan Beach", city: "Manhattan Beach", country: "US", lat: 33.8847, lon: -118.4109},
	{name: "Santa Monica", city: "Santa Monica", country: "US", lat: 34.0195, lon: -118.4912},
	{name: "Venice Beach", city: "Venice", country: "US", lat: 33.9850, lon: -118.4695},
	{name: "Trestles", city: "San Clemente", country: "US", lat: 33.3850, lon: -117.5981},
	{name: "Steamer Lane", city: "Santa Cruz", country: "US", lat: 36.9506, lon: -122.0226},

	// Hawaii
	{name: "Pipeline", city: "Haleiwa", country: "US", lat: 21.6620, lon: -158.0512},
	{name: "Sunset Beach", city: "Haleiwa", country: "US", lat: 21.6756, lon: -158.0375},
	{name: "Waikiki", city: "Honolulu", country: "US", lat: 21.2793, lon: -157.8311},

	// Australia
	{name: "Bondi Beach", city: "Sydney", country: "AU", lat: -33.8915, lon: 151.2767},
	{name: "Bells Beach", city: "Torquay", country: "AU", lat: -38.3736, lon: 144.2844},
	{name: "Superbank", city: "Gold Coast", country: "AU", lat: -28.1658, lon: 153.5360},

	// Europe
	{name: "Nazaré", city: "Nazaré", country: "PT", lat: 39.6018, lon: -9.0719},
	{name: "Ericeira", city: "Ericeira", country: "PT", lat: 38.9632, lon: -9.4156},
	{name: "Hossegor", city: "Hossegor", country: "FR", lat: 43.6618, lon: -1.3972},
	{name: "Biarritz", city: "Biarritz", country: "FR", lat: 43.4832, lon: -1.5586},
	{name: "Mundaka", city: "Mundaka", country: "ES", lat: 43.4073, lon: -2.6969},
	{name: "San Sebastian", city: "San Sebastian", country: "ES", lat: 43.3183, lon: -1.9812},

	// Indonesia
	{name: "Uluwatu", city: "Uluwatu", country: "ID", lat: -8.8290, lon: 115.0851},
	{name: "Padang Padang", city: "Uluwatu", country: "ID", lat: -8.8394, lon: 115.0866},

	{name: "Taghazout", city: "Taghazout", country: "MA", lat: 30.5441, lon: -9.7076},

	// Costa Rica
	{name: "Tamarindo", city: "Tamarindo", country: "CR", lat: 10.2989, lon: -85.8436},
	{name: "Jaco", city: "Jaco", country: "CR", lat: 9.6142, lon: -84.6274},
}

// KnownSpotGeocoder answers from a table of well-known surf breaks and
// passes every other query to next.
type KnownSpotGeocoder struct {
	next models.Geocoder
}

func NewKnownSpotGeocoder(next models.Geocoder) *KnownSpotGeocoder {
	return &KnownSpotGeocoder{next: next}
}

func (g *KnownSpotGeocoder) Geocode(ctx context.Context, query string) (*models.Location, error) {
	if s, ok := lookupKnownSpot(query); ok {
		log.Debug().Str("query", query).Str("spot", s.name).Msg("Matched known surf spot")
		return &models.Location{Name: s.name, Lat: s.lat, Lon: s.lon, Country: s.country}, nil
	}
	return g.next.Geocode(ctx, query)
}

// lookupKnownSpot prefers an exact name match, then the first spot whose
// name or city contains the query.
func lookupKnownSpot(query string) (knownSpot, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return knownSpot{}, false
	}

	for _, s := range knownSpots {
		if strings.ToLower(s.name) == q {
			return s, true
		}
	}
	for _, s := range knownSpots {
		if strings.Contains(strings.ToLower(s.name), q) || strings.Contains(strings.ToLower(s.city), q) {
			return s, true
		}
	}
	return knownSpot{}, false
}
