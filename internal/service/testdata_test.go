package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiva/cityroute/internal/model"
)

func city(name string, lat, lng float64) model.City {
	return model.City{Name: name, Location: model.Location{Lat: lat, Lng: lng}}
}

// ukraineCities is a slice of the default catalog, enough to give the
// search real branching.
func ukraineCities() []model.City {
	return []model.City{
		city("Kyiv", 50.4501, 30.5234),
		city("Kharkiv", 49.9935, 36.2304),
		city("Odesa", 46.4825, 30.7233),
		city("Dnipro", 48.4647, 35.0462),
		city("Lviv", 49.8397, 24.0297),
		city("Zaporizhzhia", 47.8388, 35.1396),
		city("Vinnytsia", 49.2331, 28.4682),
		city("Poltava", 49.5883, 34.5514),
		city("Chernihiv", 51.4982, 31.2893),
		city("Cherkasy", 49.4444, 32.0598),
		city("Zhytomyr", 50.2547, 28.6587),
		city("Rivne", 50.6199, 26.2516),
		city("Ternopil", 49.5535, 25.5948),
		city("Mykolaiv", 46.9750, 31.9946),
		city("Uzhhorod", 48.6208, 22.2879),
	}
}

func newTestCatalog(t *testing.T, cities []model.City) *Catalog {
	t.Helper()
	c, err := NewCatalog(cities)
	require.NoError(t, err)
	return c
}
