package domain

import (
	"fmt"
	"time"
)

// Group labels for the two infrastructure partitions. Every loaded record
// belongs to exactly one of them.
const (
	GroupWithTech    = "with_tech"
	GroupWithoutTech = "without_tech"
)

// SchoolRecord is one school in the census extract. Records are immutable
// once loaded; HasTech is derived at load time from the combined flag or
// from the three component indicators.
type SchoolRecord struct {
	SchoolID    string  `json:"school_id"`
	HasLab      bool    `json:"has_lab"`
	HasInternet bool    `json:"has_internet"`
	HasDevices  bool    `json:"has_devices"`
	HasTech     bool    `json:"has_tech"`
	PassRate    float64 `json:"pass_rate"` // fraction in [0,1]
}

// Group returns the infrastructure group label for the record.
func (r SchoolRecord) Group() string {
	if r.HasTech {
		return GroupWithTech
	}
	return GroupWithoutTech
}

// ColumnMapping maps source CSV column names onto the canonical schema.
// Either Combined or the three indicator columns must be set; when Combined
// is present it wins.
type ColumnMapping struct {
	SchoolID string `yaml:"school_id" json:"school_id"`
	Combined string `yaml:"combined" json:"combined"` // single 0/1 has-technology flag
	Lab      string `yaml:"lab" json:"lab"`
	Internet string `yaml:"internet" json:"internet"`
	Devices  string `yaml:"devices" json:"devices"`
	PassRate string `yaml:"pass_rate" json:"pass_rate"`
}

// DefaultColumnMapping matches the synthetic census extract produced by
// `censotec synth` and the original dataset_sintetico.csv layout.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		SchoolID: "CO_ENTIDADE",
		Combined: "TEM_ESTRUTURA_TEC",
		Lab:      "IN_LABORATORIO_INFORMATICA",
		Internet: "IN_INTERNET",
		Devices:  "IN_EQUIP_ALUNO",
		PassRate: "taxa_aprovacao",
	}
}

// Validate checks that the mapping names enough columns to derive the
// canonical schema.
func (m ColumnMapping) Validate() error {
	if m.SchoolID == "" {
		return ErrValidation("column mapping: school_id column is required")
	}
	if m.PassRate == "" {
		return ErrValidation("column mapping: pass_rate column is required")
	}
	if m.Combined == "" && m.Lab == "" && m.Internet == "" && m.Devices == "" {
		return ErrValidation("column mapping: set combined or at least one indicator column")
	}
	return nil
}

// Dataset is a registered, ingested dataset in the metastore.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourcePath  string    `json:"source_path"`
	TableName   string    `json:"table_name"`
	Rows        int64     `json:"rows"`
	WithTech    int64     `json:"with_tech"`
	WithoutTech int64     `json:"without_tech"`
	SourceMTime time.Time `json:"source_mtime"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// LoadReport summarises a CSV load: accepted rows and per-group counts.
type LoadReport struct {
	Rows        int64
	WithTech    int64
	WithoutTech int64
}

func (r LoadReport) String() string {
	return fmt.Sprintf("%d rows (%d with tech, %d without)", r.Rows, r.WithTech, r.WithoutTech)
}
