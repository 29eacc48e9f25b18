package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/deckcalc/internal/model"
)

// AppConfig holds application-wide defaults applied to new projects.
type AppConfig struct {
	DefaultMode           model.Mode          `json:"default_mode"`
	DefaultBoardWidthMm   float64             `json:"default_board_width_mm"`
	DefaultFastening      model.FasteningMode `json:"default_fastening"`
	DefaultProduct        model.Product       `json:"default_product"`
	DefaultRules          model.Ruleset       `json:"default_rules"`
	RecentProjects        []string            `json:"recent_projects"`
	KeepResultsInProjects bool                `json:"keep_results_in_projects"` // Persist computed quantities alongside the plan
}

// DefaultAppConfig returns an AppConfig matching the model defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMode:           model.ModeConsumer,
		DefaultBoardWidthMm:   140,
		DefaultFastening:      model.FasteningScrew,
		DefaultProduct:        model.DefaultProduct(),
		DefaultRules:          model.DefaultRuleset(),
		RecentProjects:        []string{},
		KeepResultsInProjects: true,
	}
}

// ApplyToProject copies the configured defaults into a project.
func (c AppConfig) ApplyToProject(p *model.Project) {
	p.Product = c.DefaultProduct
	p.Rules = c.DefaultRules
	p.Rules.Mode = c.DefaultMode
	p.Fastening = c.DefaultFastening
	if c.DefaultBoardWidthMm > 0 {
		p.Plan.BoardWidthMm = c.DefaultBoardWidthMm
	}
}

// maxRecentProjects caps the recent-projects list.
const maxRecentProjects = 10

// RememberProject moves path to the front of the recent-projects list,
// dropping any earlier occurrence and trimming the list to the cap.
func (c *AppConfig) RememberProject(path string) {
	recents := []string{path}
	for _, p := range c.RecentProjects {
		if p == path {
			continue
		}
		recents = append(recents, p)
	}
	if len(recents) > maxRecentProjects {
		recents = recents[:maxRecentProjects]
	}
	c.RecentProjects = recents
}

// PrepareForSave returns the project as it should be persisted: when
// KeepResultsInProjects is off, the computed result is stripped so project
// files stay plan-only.
func (c AppConfig) PrepareForSave(p model.Project) model.Project {
	if !c.KeepResultsInProjects {
		p.Result = nil
	}
	return p
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.deckcalc/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".deckcalc")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON. It creates
// any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. If the file does not
// exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
