// Package geo holds WGS84 locations and the great-circle math shared by
// geocoding, pin storage and duplicate detection.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// SRID of every point this package produces.
const SRID = 4326

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371008.8

// ErrInvalidCoordinates is returned for unparsable or out-of-range input.
var ErrInvalidCoordinates = eris.New("geo: invalid coordinates")

// Location is a latitude/longitude pair in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the latitude is within [-90, 90] and the longitude
// within [-180, 180]. NaN and infinities fail the range checks.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Lat, l.Lng)
}

// Point converts to a go-geom point. go-geom orders coordinates X=lng, Y=lat.
func (l Location) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{l.Lng, l.Lat}).SetSRID(SRID)
}

// FromPoint is the inverse of Location.Point.
func FromPoint(p *geom.Point) (Location, error) {
	if p == nil || p.Empty() {
		return Location{}, eris.Wrap(ErrInvalidCoordinates, "geo: empty point")
	}
	loc := Location{Lat: p.Y(), Lng: p.X()}
	if !loc.Valid() {
		return Location{}, eris.Wrapf(ErrInvalidCoordinates, "geo: point %s", loc)
	}
	return loc, nil
}

// ParseLocation parses "lat,lng".
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, eris.Wrapf(ErrInvalidCoordinates, "geo: parse %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, eris.Wrapf(ErrInvalidCoordinates, "geo: parse latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, eris.Wrapf(ErrInvalidCoordinates, "geo: parse longitude %q", parts[1])
	}
	loc := Location{Lat: lat, Lng: lng}
	if !loc.Valid() {
		return Location{}, eris.Wrapf(ErrInvalidCoordinates, "geo: out of range %q", s)
	}
	return loc, nil
}

// Distance returns the haversine great-circle distance in meters.
func Distance(a, b Location) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadius * c
}

// Offset moves a location by the given meters north and east. Good enough
// for the short distances pins are compared over.
func Offset(l Location, north, east float64) Location {
	dLat := north / earthRadius
	dLng := east / (earthRadius * math.Cos(toRadians(l.Lat)))
	return Location{
		Lat: l.Lat + dLat*180/math.Pi,
		Lng: l.Lng + dLng*180/math.Pi,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
