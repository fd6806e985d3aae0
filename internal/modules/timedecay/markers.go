package timedecay

import (
	"sort"
	"time"

	"github.com/quantfold/optionchart/internal/domain"
)

// Marker is an expiration tick rendered on the time slider.
type Marker struct {
	Expiration     time.Time `json:"expiration"`
	Hours          float64   `json:"hours"`
	SliderPosition float64   `json:"slider_position"`
	Expired        bool      `json:"expired"`
}

// MaxHours returns the hours from now to the farthest future expiration
// among positions, the slider's full-scale value. Returns 0 when no
// position expires in the future.
func MaxHours(positions []domain.Position, now time.Time) float64 {
	max := 0.0
	for _, p := range positions {
		if h := p.Expiration.Sub(now).Hours(); h > max {
			max = h
		}
	}
	return max
}

// ExpirationMarkers builds one marker per distinct expiration that falls
// strictly inside (0, maxHours). currentOffset is the slider's present
// hours value; a marker is flagged expired once the offset reaches it.
func (m Mapper) ExpirationMarkers(positions []domain.Position, maxHours, currentOffset float64, now time.Time) []Marker {
	seen := make(map[time.Time]bool)
	var markers []Marker
	for _, p := range positions {
		if seen[p.Expiration] {
			continue
		}
		seen[p.Expiration] = true

		hours := p.Expiration.Sub(now).Hours()
		if hours <= 0 || hours >= maxHours {
			continue
		}
		markers = append(markers, Marker{
			Expiration:     p.Expiration,
			Hours:          hours,
			SliderPosition: m.HoursToSlider(hours, maxHours),
			Expired:        currentOffset >= hours,
		})
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].Hours < markers[j].Hours })
	return markers
}
