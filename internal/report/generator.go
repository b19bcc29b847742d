// Package report serializes a dashboard snapshot for other tools.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Snapshot is the serialized report document.
type Snapshot struct {
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	Source      string              `json:"source" yaml:"source"`
	Dashboard   dashboard.Dashboard `json:"dashboard" yaml:"dashboard"`
}

// ReportGenerator renders snapshots in JSON or YAML.
type ReportGenerator struct {
	logger logging.Logger
	now    func() time.Time
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
		now:    time.Now,
	}
}

// GenerateReport renders d in the given format (json or yaml).
func (g *ReportGenerator) GenerateReport(d dashboard.Dashboard, source, format string) ([]byte, error) {
	snapshot := Snapshot{GeneratedAt: g.now().UTC(), Source: source, Dashboard: d}

	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(snapshot)
	case FormatYAML, "yml":
		return g.generateYAMLReport(snapshot)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(snapshot Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *ReportGenerator) generateYAMLReport(snapshot Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}
