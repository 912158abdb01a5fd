package ingestion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rudidomingues/censotec/internal/domain"
)

// LoadMappingFile reads a YAML column mapping and overlays it on the default
// mapping, so a file only needs to name the columns that differ from the
// synthetic census layout.
func LoadMappingFile(path string) (domain.ColumnMapping, error) {
	m := domain.DefaultColumnMapping()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return m, fmt.Errorf("read mapping file: %w", err)
	}

	var overlay domain.ColumnMapping
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return m, domain.ErrValidation("parse mapping file %s: %v", path, err)
	}

	if overlay.SchoolID != "" {
		m.SchoolID = overlay.SchoolID
	}
	if overlay.Combined != "" {
		m.Combined = overlay.Combined
	}
	if overlay.Lab != "" {
		m.Lab = overlay.Lab
	}
	if overlay.Internet != "" {
		m.Internet = overlay.Internet
	}
	if overlay.Devices != "" {
		m.Devices = overlay.Devices
	}
	if overlay.PassRate != "" {
		m.PassRate = overlay.PassRate
	}

	return m, m.Validate()
}
