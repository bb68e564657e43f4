package output

import (
	"encoding/json"

	"github.com/rpgo/finplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter serializes the plan report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// YAMLFormatter serializes the plan report as YAML, the same encoding plans are read from.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	return yaml.Marshal(report)
}
