package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"pokerclock/internal/domain"
)

func newTestRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("NewFileRepository: %v", err)
	}
	return repo, dir
}

// TestLoadCurrentMissing verifies a fresh directory has no tournament
func TestLoadCurrentMissing(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, found, err := repo.LoadCurrent()
	if err != nil || found {
		t.Errorf("Expected not found without error, got found=%v err=%v", found, err)
	}
}

// TestSaveAndLoadCurrent verifies a tournament survives a reload
func TestSaveAndLoadCurrent(t *testing.T) {
	repo, dir := newTestRepo(t)
	cfg := domain.DefaultTournamentConfig().
		WithName("Friday").
		WithDescription("weekly").
		WithCurrentLevel(3).
		WithBreakConfig(domain.BreakConfig{Enabled: true, Duration: 600, EveryNLevels: 4, SpecificLevels: []int{7}})

	if err := repo.SaveCurrent(cfg); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}

	reopened, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, found, err := reopened.LoadCurrent()
	if err != nil || !found {
		t.Fatalf("LoadCurrent: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

// TestLoadCurrentWithoutBreakConfig verifies older documents get the default break policy
func TestLoadCurrentWithoutBreakConfig(t *testing.T) {
	repo, dir := newTestRepo(t)
	doc := `{
  "name": "Legacy",
  "startingChips": 5000,
  "blindLevels": [{"level": 1, "smallBlind": 10, "bigBlind": 20, "ante": 0, "duration": 900}],
  "defaultLevelDuration": 900,
  "soundAlertsEnabled": true,
  "currentLevel": 0
}`
	if err := os.WriteFile(filepath.Join(dir, currentTournamentKey+".json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, found, err := repo.LoadCurrent()
	if err != nil || !found {
		t.Fatalf("LoadCurrent: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got.BreakConfig, domain.DefaultBreakConfig()) {
		t.Errorf("Expected default break config, got %+v", got.BreakConfig)
	}
	if got.Name != "Legacy" || got.BlindLevels[0].Duration != 900 {
		t.Errorf("Unexpected config: %+v", got)
	}
}

// TestLoadCurrentNullEveryNLevels verifies a null interval disables the recurring rule
func TestLoadCurrentNullEveryNLevels(t *testing.T) {
	repo, dir := newTestRepo(t)
	doc := `{"name": "X", "startingChips": 1, "blindLevels": [], "breakConfig": {"enabled": true, "duration": 300, "everyNLevels": null, "specificLevels": [5]}}`
	if err := os.WriteFile(filepath.Join(dir, currentTournamentKey+".json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _, err := repo.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if got.BreakConfig.EveryNLevels != 0 || !reflect.DeepEqual(got.BreakConfig.SpecificLevels, []int{5}) {
		t.Errorf("Unexpected break config: %+v", got.BreakConfig)
	}
}

// TestLoadCurrentCorrupt verifies unreadable documents report an error
func TestLoadCurrentCorrupt(t *testing.T) {
	repo, dir := newTestRepo(t)
	if err := os.WriteFile(filepath.Join(dir, currentTournamentKey+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := repo.LoadCurrent(); err == nil {
		t.Error("Expected an error for a corrupt document")
	}
}

// TestResetCurrent verifies the saved tournament is removed
func TestResetCurrent(t *testing.T) {
	repo, _ := newTestRepo(t)
	_ = repo.SaveCurrent(domain.DefaultTournamentConfig())

	if err := repo.ResetCurrent(); err != nil {
		t.Fatalf("ResetCurrent: %v", err)
	}
	if _, found, _ := repo.LoadCurrent(); found {
		t.Error("Expected no tournament after reset")
	}
	if err := repo.ResetCurrent(); err != nil {
		t.Errorf("Expected second reset to succeed, got %v", err)
	}
}

// TestPresets verifies save, replace, order and delete
func TestPresets(t *testing.T) {
	repo, _ := newTestRepo(t)
	cfg := domain.DefaultTournamentConfig()

	_ = repo.SavePreset(domain.Preset{ID: "b", Name: "Second", Config: cfg, CreatedAt: 200})
	_ = repo.SavePreset(domain.Preset{ID: "a", Name: "First", Config: cfg, CreatedAt: 100})
	_ = repo.SavePreset(domain.Preset{ID: "b", Name: "Second v2", Config: cfg, CreatedAt: 200})

	presets, err := repo.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(presets) != 2 || presets[0].ID != "a" || presets[1].Name != "Second v2" {
		t.Errorf("Unexpected presets: %+v", presets)
	}

	if err := repo.DeletePreset("a"); err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if err := repo.DeletePreset("a"); !errors.Is(err, domain.ErrPresetNotFound) {
		t.Errorf("Expected ErrPresetNotFound, got %v", err)
	}
	presets, _ = repo.ListPresets()
	if len(presets) != 1 || presets[0].ID != "b" {
		t.Errorf("Expected only b, got %+v", presets)
	}
}

// TestConcurrentPresetWrites verifies parallel saves and deletes never drop an update
func TestConcurrentPresetWrites(t *testing.T) {
	repo, _ := newTestRepo(t)
	cfg := domain.DefaultTournamentConfig()
	for i := 0; i < 10; i++ {
		_ = repo.SavePreset(domain.Preset{ID: fmt.Sprintf("old-%d", i), Name: "Old", Config: cfg, CreatedAt: int64(i)})
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := domain.Preset{ID: fmt.Sprintf("new-%d", i), Name: "New", Config: cfg, CreatedAt: int64(100 + i)}
			if err := repo.SavePreset(p); err != nil {
				t.Errorf("SavePreset %d: %v", i, err)
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := repo.DeletePreset(fmt.Sprintf("old-%d", i)); err != nil {
				t.Errorf("DeletePreset %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	presets, err := repo.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(presets) != 20 {
		t.Errorf("Expected 20 presets, got %d", len(presets))
	}
	for _, p := range presets {
		if p.Name != "New" {
			t.Errorf("Expected only new presets, got %s", p.ID)
		}
	}
}

// TestStoreUpdateAbort verifies a failing update leaves the document untouched
func TestStoreUpdateAbort(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("counter", 1); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	var n int
	err = store.Update("counter", &n, func(found bool) error {
		if !found || n != 1 {
			t.Errorf("Expected to read 1, got found=%v n=%d", found, n)
		}
		n = 99
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}

	var got int
	if _, err := store.Get("counter", &got); err != nil || got != 1 {
		t.Errorf("Expected 1 after aborted update, got %d (%v)", got, err)
	}
}

// TestStoreRejectsBadKeys verifies keys cannot escape the data dir
func TestStoreRejectsBadKeys(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../x", "a/b", ".hidden"} {
		if err := store.Put(key, 1); err == nil {
			t.Errorf("Expected key %q to be rejected", key)
		}
	}
	if _, err := NewStore(""); err == nil {
		t.Error("Expected empty dir to be rejected")
	}
}
