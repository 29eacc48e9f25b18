package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/deckcalc/internal/geom"
	"github.com/piwi3910/deckcalc/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deck.json")

	p := model.NewProject("Roundtrip")
	p.Plan.Polygon = geom.Polygon{
		Outer: []geom.Point{{X: 0, Y: 0}, {X: 2000, Y: 0}, {X: 2000, Y: 1000}, {X: 0, Y: 1000}},
	}
	p.Rules.Mode = model.ModePro

	if err := Save(path, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Name != "Roundtrip" || back.Plan.ID != p.Plan.ID {
		t.Errorf("project identity lost: %q %q", back.Name, back.Plan.ID)
	}
	if back.Rules.Mode != model.ModePro {
		t.Errorf("rules lost: %s", back.Rules.Mode)
	}
	if len(back.Plan.Polygon.Outer) != 4 {
		t.Error("polygon lost")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsInvalidProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := Save(path, model.Project{Name: "no plan id"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for project without plan id")
	}
}

func TestAppConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	config := DefaultAppConfig()
	config.DefaultMode = model.ModePro
	config.RecentProjects = []string{"/tmp/deck.json"}

	if err := SaveAppConfig(path, config); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.DefaultMode != model.ModePro {
		t.Errorf("mode lost: %s", back.DefaultMode)
	}
	if len(back.RecentProjects) != 1 {
		t.Errorf("recent projects lost: %v", back.RecentProjects)
	}
}

func TestLoadAppConfigMissingReturnsDefaults(t *testing.T) {
	config, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("expected defaults for missing config, got error: %v", err)
	}
	if config.DefaultMode != model.ModeConsumer {
		t.Errorf("unexpected default mode %s", config.DefaultMode)
	}
	if config.RecentProjects == nil {
		t.Error("recent projects must never be nil")
	}
}

func TestRememberProject(t *testing.T) {
	config := DefaultAppConfig()

	config.RememberProject("/tmp/a.json")
	config.RememberProject("/tmp/b.json")
	if len(config.RecentProjects) != 2 || config.RecentProjects[0] != "/tmp/b.json" {
		t.Errorf("expected most recent first, got %v", config.RecentProjects)
	}

	// Re-opening a known project moves it to the front without duplicating.
	config.RememberProject("/tmp/a.json")
	if len(config.RecentProjects) != 2 || config.RecentProjects[0] != "/tmp/a.json" {
		t.Errorf("expected move-to-front, got %v", config.RecentProjects)
	}

	for i := 0; i < 20; i++ {
		config.RememberProject(filepath.Join("/tmp", string(rune('a'+i))+".json"))
	}
	if len(config.RecentProjects) != 10 {
		t.Errorf("expected recent list capped at 10, got %d", len(config.RecentProjects))
	}
}

func TestPrepareForSave(t *testing.T) {
	p := model.NewProject("With result")
	p.Result = &model.Quantities{FootingQty: 4}

	config := DefaultAppConfig()
	if got := config.PrepareForSave(p); got.Result == nil {
		t.Error("expected result kept when KeepResultsInProjects is on")
	}

	config.KeepResultsInProjects = false
	if got := config.PrepareForSave(p); got.Result != nil {
		t.Error("expected result stripped when KeepResultsInProjects is off")
	}
	if p.Result == nil {
		t.Error("stripping must not mutate the caller's project")
	}
}

func TestApplyToProject(t *testing.T) {
	config := DefaultAppConfig()
	config.DefaultMode = model.ModePro
	config.DefaultBoardWidthMm = 120

	p := model.NewProject("Apply")
	config.ApplyToProject(&p)

	if p.Rules.Mode != model.ModePro {
		t.Errorf("expected pro mode, got %s", p.Rules.Mode)
	}
	if p.Plan.BoardWidthMm != 120 {
		t.Errorf("expected 120 mm board width, got %.0f", p.Plan.BoardWidthMm)
	}
}
