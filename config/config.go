// Package config holds the settings of a harvest run.
//
// Every field has a default matching the catalog endpoints as they were
// published, so running without a configuration file is the normal case.
// A JSON5 file can override any subset of fields, and a sibling
// "<name>.local.<ext>" file overrides that file in turn.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// BuildPlaceholder is replaced by Endpoints.NextBuildID in endpoint URLs.
const BuildPlaceholder = "{build}"

// Config is the full run configuration.
type Config struct {
	// OutputDir is the root of the output tree.
	OutputDir string `json:"output_dir"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int       `json:"timeout_seconds"`
	Endpoints      Endpoints `json:"endpoints"`
}

// Endpoints lists the upstream URLs. The Next.js data URLs embed a build
// identifier that changes whenever the portal is redeployed.
type Endpoints struct {
	Marine               string `json:"marine"`
	Land                 string `json:"land"`
	EmergencyProducts    string `json:"emergency_products"`
	EmergencyActivations string `json:"emergency_activations"`
	Atmosphere           string `json:"atmosphere"`
	Climate              string `json:"climate"`

	// NextBuildID fills BuildPlaceholder in EmergencyProducts and Atmosphere.
	NextBuildID string `json:"next_build_id"`
	// ActivationTime is the "from,to" month range of emergency activations.
	ActivationTime string `json:"activation_time"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		OutputDir:      "outputs",
		TimeoutSeconds: 60,
		Endpoints: Endpoints{
			Marine:               "https://data-be-prd.marine.copernicus.eu/api/datasets",
			Land:                 "https://land.copernicus.eu/++api++/en/dataset-catalog/@querystring-search",
			EmergencyProducts:    "https://ewds.climate.copernicus.eu/_next/data/" + BuildPlaceholder + "/en/datasets.json",
			EmergencyActivations: "https://mapping.emergency.copernicus.eu/activations/api/activations/",
			Atmosphere:           "https://ads.atmosphere.copernicus.eu/_next/data/" + BuildPlaceholder + "/en/datasets.json",
			Climate:              "https://cds.climate.copernicus.eu/api/catalogue/v1/datasets",
			NextBuildID:          "2-bipz9DZL-VVNkdRqXty",
			ActivationTime:       "2012-01,2025-12",
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Resolve substitutes the build identifier into a URL template.
func (e Endpoints) Resolve(template string) string {
	return strings.ReplaceAll(template, BuildPlaceholder, e.NextBuildID)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}

	urls := map[string]string{
		"marine":                c.Endpoints.Marine,
		"land":                  c.Endpoints.Land,
		"emergency_products":    c.Endpoints.EmergencyProducts,
		"emergency_activations": c.Endpoints.EmergencyActivations,
		"atmosphere":            c.Endpoints.Atmosphere,
		"climate":               c.Endpoints.Climate,
	}
	for name, raw := range urls {
		u, err := url.Parse(c.Endpoints.Resolve(raw))
		if err != nil {
			return fmt.Errorf("endpoints.%s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoints.%s: unsupported URL %q", name, raw)
		}
	}
	if strings.Contains(c.Endpoints.EmergencyProducts+c.Endpoints.Atmosphere, BuildPlaceholder) && c.Endpoints.NextBuildID == "" {
		return errors.New("endpoints.next_build_id must be set when a URL contains " + BuildPlaceholder)
	}
	return nil
}

// Load returns the defaults merged with the file at path and its local
// override. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	override, err := readConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no configuration file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("failed to merge config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// readConfig reads name and merges "<name>.local.<ext>" over it. It returns
// os.ErrNotExist only when neither file exists.
func readConfig(name string) (Config, error) {
	var out Config
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, err
		}
		found = true
	}

	local := localPath(name)
	localFile, err := os.ReadFile(local)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(localFile) > 0 {
		var override Config
		if err := json5.Unmarshal(localFile, &override); err != nil {
			return out, err
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", local)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}
