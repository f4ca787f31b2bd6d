package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrip-backend/internal/domains/scene/model"
)

func TestNormalizeCandidate_ValidItemIsKept(t *testing.T) {
	loc := normalizeCandidate(670, 1, json.RawMessage(
		`{"id":1,"name":" Dumpling House ","scene":"Oh Dae-su eats","timestamp":"00:12:30","address":"Some street","country":"South Korea","city":"Seoul","lat":37.123456789,"lng":"127.5"}`,
	))

	assert.Equal(t, 670, loc.TMDBID)
	assert.Equal(t, "Dumpling House", loc.Name)
	assert.Equal(t, "Oh Dae-su eats", loc.Scene)
	require.NotNil(t, loc.Timestamp)
	assert.Equal(t, "00:12:30", *loc.Timestamp)
	assert.Equal(t, "37.12345679", loc.Lat.String())
	assert.True(t, loc.Lng.Equal(decimal.RequireFromString("127.5")))
}

func TestNormalizeCandidate_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		assert func(t *testing.T, loc *model.SceneLocation)
	}{
		{
			name: "empty object",
			raw:  `{}`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.Equal(t, "Filming location 3", loc.Name)
				assert.Equal(t, model.PlaceholderScene, loc.Scene)
				assert.Equal(t, model.UnknownValue, loc.Address)
				assert.Equal(t, model.UnknownValue, loc.Country)
				assert.Equal(t, model.UnknownValue, loc.City)
				assert.Nil(t, loc.Timestamp)
				assert.True(t, loc.Lat.Equal(model.DefaultLatitude))
				assert.True(t, loc.Lng.Equal(model.DefaultLongitude))
			},
		},
		{
			name: "latitude out of range resets both coordinates",
			raw:  `{"name":"Pole","lat":95,"lng":10}`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.True(t, loc.Lat.Equal(model.DefaultLatitude))
				assert.True(t, loc.Lng.Equal(model.DefaultLongitude))
			},
		},
		{
			name: "longitude missing resets both coordinates",
			raw:  `{"name":"Half","lat":10}`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.True(t, loc.Lat.Equal(model.DefaultLatitude))
			},
		},
		{
			name: "zero coordinates are valid",
			raw:  `{"name":"Null Island","lat":0,"lng":0}`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.True(t, loc.Lat.IsZero())
				assert.True(t, loc.Lng.IsZero())
			},
		},
		{
			name: "numbers become strings",
			raw:  `{"name":1984,"city":true,"lat":1,"lng":2}`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.Equal(t, "1984", loc.Name)
				assert.Equal(t, "true", loc.City)
			},
		},
		{
			name: "long values are truncated",
			raw:  `{"name":"` + strings.Repeat("가", 300) + `","country":"` + strings.Repeat("x", 120) + `","timestamp":"` + strings.Repeat("1", 70) + `"}`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.Equal(t, model.MaxNameLength, len([]rune(loc.Name)))
				assert.Len(t, loc.Country, model.MaxCountryLength)
				require.NotNil(t, loc.Timestamp)
				assert.Len(t, *loc.Timestamp, model.MaxTimestampLength)
			},
		},
		{
			name: "not an object",
			raw:  `[1,2,3]`,
			assert: func(t *testing.T, loc *model.SceneLocation) {
				assert.Equal(t, "Filming location 3", loc.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, normalizeCandidate(1, 3, json.RawMessage(tt.raw)))
		})
	}
}
