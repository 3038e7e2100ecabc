package geocode

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"googlemaps.github.io/maps"

	"lifeline/types"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// Enabled reports whether geocoding is configured for this deployment.
func Enabled() bool {
	return os.Getenv("MAPS_CREDENTIALS") != ""
}

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Fatalf("Failed to create maps client: %v", err)
		}
	})
	return mapsClient, err
}

// GeocodeAddress takes an address string and returns geocoding results.
func GeocodeAddress(address string) ([]maps.GeocodingResult, error) {
	client, err := InitMapsClient()
	if err != nil {
		return nil, err
	}

	req := &maps.GeocodingRequest{
		Address: address,
	}

	results, err := client.Geocode(context.Background(), req)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// FillMissingCoordinates geocodes donors that carry a location string but no
// usable coordinates, so they can participate in the spatial index. Best
// effort and opt-in: with geocoding unconfigured or failing, the donor simply
// stays out of the index. Runs before the snapshot is built; records are
// immutable afterwards.
func FillMissingCoordinates(donors []types.DonorRecord) int {
	if !Enabled() {
		return 0
	}
	filled := 0
	for i := range donors {
		d := &donors[i]
		if _, _, ok := d.Coordinates(); ok {
			continue
		}
		if d.Location == "" || d.Location == "Unknown" {
			continue
		}
		results, err := GeocodeAddress(d.Location)
		if err != nil {
			log.Printf("Failed to geocode %q: %v", d.Location, err)
			continue
		}
		if len(results) == 0 {
			log.Printf("No geocode results for %q", d.Location)
			continue
		}
		loc := results[0].Geometry.Location
		lat, lng := loc.Lat, loc.Lng
		d.Latitude = &lat
		d.Longitude = &lng
		filled++
	}
	return filled
}
