package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/copcat/config"
)

func TestCatalog(t *testing.T) {
	adapters := Catalog(config.Defaults().Endpoints)

	assert.Equal(t, []string{
		Marine, Land, Emergency, EmergencyActivations, Atmosphere, Climate, Security,
	}, Names(adapters))

	for _, a := range adapters {
		t.Run(a.Name, func(t *testing.T) {
			if a.Disabled {
				assert.NotEmpty(t, a.Reason)
				return
			}
			assert.True(t, strings.HasPrefix(a.Request.URL, "https://"), a.Request.URL)
			assert.NotContains(t, a.Request.URL, config.BuildPlaceholder)
			assert.NotEmpty(t, a.Path)
		})
	}
}

func TestCatalog_Details(t *testing.T) {
	e := config.Defaults().Endpoints
	e.NextBuildID = "build42"
	e.ActivationTime = "2015-01,2016-12"
	adapters := Catalog(e)

	marine, ok := Find(adapters, Marine)
	require.True(t, ok)
	assert.Equal(t, "POST", marine.Request.Method)
	assert.Equal(t, Mapping, marine.Shape)
	body := marine.Request.Body.(map[string]interface{})
	assert.Equal(t, 5000, body["size"])
	assert.Equal(t, "summary", body["variant"])
	assert.Equal(t, "https://data.marine.copernicus.eu", marine.Request.Headers["Origin"])

	atmosphere, _ := Find(adapters, Atmosphere)
	assert.Contains(t, atmosphere.Request.URL, "/_next/data/build42/")
	assert.Equal(t, []string{"summaries"}, atmosphere.Stringify)

	emergency, _ := Find(adapters, Emergency)
	assert.Contains(t, emergency.Request.URL, "/_next/data/build42/")
	assert.Equal(t, []string{"pageProps", "datasets"}, emergency.Path)

	activations, _ := Find(adapters, EmergencyActivations)
	assert.Equal(t, "2015-01,2016-12", activations.Request.Query.Get("activationTime"))
	assert.Equal(t, "5000", activations.Request.Query.Get("limit"))
	assert.Empty(t, activations.Stringify)

	land, _ := Find(adapters, Land)
	assert.Contains(t, land.Request.JSONQuery, "query")

	climate, _ := Find(adapters, Climate)
	assert.Equal(t, "500", climate.Request.Query.Get("limit"))
	assert.Equal(t, []string{"collections"}, climate.Path)

	security, _ := Find(adapters, Security)
	assert.True(t, security.Disabled)
}

func TestSelect(t *testing.T) {
	adapters := Catalog(config.Defaults().Endpoints)

	all, err := Select(adapters, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(adapters))

	// Catalog order wins over argument order.
	picked, err := Select(adapters, []string{"climate", " marine "})
	require.NoError(t, err)
	assert.Equal(t, []string{Marine, Climate}, Names(picked))

	_, err = Select(adapters, []string{"ocean"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "ocean"`)
}

func TestFind_Missing(t *testing.T) {
	_, ok := Find(Catalog(config.Defaults().Endpoints), "nope")
	assert.False(t, ok)
}
