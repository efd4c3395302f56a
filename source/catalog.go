package source

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vegasq/copcat/config"
)

// Output names of the catalog adapters.
const (
	Marine               = "marine"
	Land                 = "land"
	Emergency            = "emergency"
	EmergencyActivations = "emergency_activities_since_2012"
	Atmosphere           = "atmosphere"
	Climate              = "climate"
	Security             = "security"
)

// marineFacets are requested so the summary variant carries every facet.
var marineFacets = []string{
	"favorites", "timeRange", "vertLevels", "elevationRange", "colors",
	"mainVariables", "specificVariables", "areas", "indicatorFamilies",
	"featureTypes", "tempResolutions", "sources", "processingLevel",
	"directives", "communities", "originatingCenter",
}

var activationCategories = []string{
	"flood", "fire", "earthquake", "volcan", "humanitarian",
	"mass", "storm", "industrial", "environment", "other",
}

// Catalog returns every adapter in run order.
func Catalog(e config.Endpoints) []Adapter {
	return []Adapter{
		{
			Name:   Marine,
			Title:  "Marine",
			Portal: "https://data.marine.copernicus.eu/products",
			Request: Request{
				Method: http.MethodPost,
				URL:    e.Marine,
				Headers: map[string]string{
					"Accept":          "*/*",
					"Accept-Language": "en-US,en;q=0.9",
					"Origin":          "https://data.marine.copernicus.eu",
					"Referer":         "https://data.marine.copernicus.eu/",
					"User-Agent":      BrowserUserAgent,
					"Content-Type":    "application/json",
				},
				Body: marinePayload(),
			},
			Path:  []string{"datasets"},
			Shape: Mapping,
		},
		{
			Name:   Land,
			Title:  "Land",
			Portal: "https://land.copernicus.eu/en/dataset-catalog",
			Request: Request{
				Method: http.MethodGet,
				URL:    e.Land,
				JSONQuery: map[string]interface{}{
					"query": map[string]interface{}{
						"b_size":          "500",
						"metadata_fields": "_all",
						"query": []interface{}{
							map[string]interface{}{
								"i": "portal_type",
								"o": "plone.app.querystring.operation.selection.any",
								"v": []string{"DataSet"},
							},
						},
					},
				},
			},
			Path: []string{"items"},
		},
		{
			Name:   Emergency,
			Title:  "Emergency (products)",
			Portal: "https://emergency.copernicus.eu/data/",
			Request: Request{
				Method: http.MethodGet,
				URL:    e.Resolve(e.EmergencyProducts),
			},
			Path:      []string{"pageProps", "datasets"},
			Stringify: []string{"summaries"},
		},
		{
			Name:   EmergencyActivations,
			Title:  "Emergency (activations)",
			Portal: "https://emergency.copernicus.eu/data/",
			Request: Request{
				Method: http.MethodGet,
				URL:    e.EmergencyActivations,
				Query: url.Values{
					"categories":     {strings.Join(activationCategories, ",")},
					"activationTime": {e.ActivationTime},
					"countries":      {""},
					"drmPhase":       {""},
					"closed":         {""},
					"limit":          {"5000"},
					"q":              {""},
				},
			},
			Path: []string{"results"},
		},
		{
			Name:   Atmosphere,
			Title:  "Atmosphere",
			Portal: "https://ads.atmosphere.copernicus.eu/datasets",
			Request: Request{
				Method: http.MethodGet,
				URL:    e.Resolve(e.Atmosphere),
			},
			Path:      []string{"pageProps", "datasets"},
			Stringify: []string{"summaries"},
		},
		{
			Name:   Climate,
			Title:  "Climate",
			Portal: "https://cds.climate.copernicus.eu/datasets",
			Request: Request{
				Method: http.MethodGet,
				URL:    e.Climate,
				Query:  url.Values{"limit": {"500"}},
			},
			Path:      []string{"collections"},
			Stringify: []string{"summaries"},
		},
		{
			Name:     Security,
			Title:    "Security",
			Disabled: true,
			Reason:   "nothing available at time of writing",
		},
	}
}

func marinePayload() map[string]interface{} {
	return map[string]interface{}{
		"app":         "cmems",
		"perimeter":   "cmems",
		"facets":      marineFacets,
		"facetValues": map[string]interface{}{},
		"freeText":    "",
		"dateRange": map[string]interface{}{
			"begin":     nil,
			"end":       nil,
			"coverFull": false,
		},
		"elevationRange": map[string]interface{}{
			"begin": nil,
			"end":   nil,
		},
		"offset":      0,
		"size":        5000,
		"variant":     "summary",
		"lang":        "en",
		"__myOcean__": true,
	}
}

// Find returns the adapter with the given name.
func Find(adapters []Adapter, name string) (Adapter, bool) {
	for _, a := range adapters {
		if a.Name == name {
			return a, true
		}
	}
	return Adapter{}, false
}

// Select keeps the named adapters in catalog order. An empty selection
// keeps all of them; an unknown name is an error.
func Select(adapters []Adapter, names []string) ([]Adapter, error) {
	if len(names) == 0 {
		return adapters, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := Find(adapters, name); !ok {
			return nil, fmt.Errorf("unknown source %q (available: %s)", name, strings.Join(Names(adapters), ", "))
		}
		wanted[name] = true
	}

	var selected []Adapter
	for _, a := range adapters {
		if wanted[a.Name] {
			selected = append(selected, a)
		}
	}
	return selected, nil
}

// Names lists adapter names in order.
func Names(adapters []Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name
	}
	return names
}
