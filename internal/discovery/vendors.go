package discovery

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DiscoverOrFallback returns the sitemap vendors, or the fallback list when
// the sitemap cannot be fetched, parsed, or yields nothing. The bool reports
// whether the fallback was used.
func DiscoverOrFallback(ctx context.Context, d *Discoverer, fallback []string) ([]string, bool) {
	vendors, err := d.Discover(ctx)
	if err != nil {
		zap.L().Warn("discovery: falling back to static vendor list",
			zap.Error(err),
			zap.Int("fallback_count", len(fallback)),
		)
		return append([]string(nil), fallback...), true
	}
	return vendors, false
}

type vendorFile struct {
	Vendors []string `yaml:"vendors"`
}

// LoadVendorFile reads a YAML file with a top-level vendors list. Used to
// pin the harvest to an explicit vendor set instead of the sitemap.
func LoadVendorFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "discovery: read vendor file %s", path)
	}

	var vf vendorFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, eris.Wrapf(err, "discovery: parse vendor file %s", path)
	}
	if len(vf.Vendors) == 0 {
		return nil, eris.Errorf("discovery: vendor file %s lists no vendors", path)
	}

	return vf.Vendors, nil
}
