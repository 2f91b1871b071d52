package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitializeWithoutConfigIsNoOp(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(CloseAll)

	// No config file means production mode: no logs directory, no-op
	// loggers.
	if IsDebugMode() {
		t.Error("debug mode should be off without config")
	}
	if _, err := os.Stat(filepath.Join(dir, ".arise", "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not be created in production mode")
	}

	// Logging through a no-op logger must not panic.
	Get(CategoryExtraction).Info("ignored message %d", 42)
	Extraction("also ignored")
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".arise")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := map[string]interface{}{
		"logging": map[string]interface{}{
			"debug_mode": true,
			"level":      "debug",
		},
	}
	data, _ := json.Marshal(cfg)
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(CloseAll)

	if !IsDebugMode() {
		t.Fatal("debug mode should be on")
	}

	Store("store message for the test")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(dir, ".arise", "logs", date+"_store.log")
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("store log missing: %v", err)
	}
	if len(content) == 0 {
		t.Error("store log is empty")
	}
}

func TestCategoryFiltering(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".arise")
	_ = os.MkdirAll(configDir, 0755)

	cfg := map[string]interface{}{
		"logging": map[string]interface{}{
			"debug_mode": true,
			"level":      "info",
			"categories": map[string]bool{
				"store": false,
				"api":   true,
			},
		},
	}
	data, _ := json.Marshal(cfg)
	_ = os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(CloseAll)

	if IsCategoryEnabled(CategoryStore) {
		t.Error("store category should be disabled")
	}
	if !IsCategoryEnabled(CategoryAPI) {
		t.Error("api category should be enabled")
	}
	// Unlisted categories default to enabled in debug mode.
	if !IsCategoryEnabled(CategoryExtraction) {
		t.Error("unlisted category should default to enabled")
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer(CategoryAPI, "test operation")
	elapsed := timer.Stop()
	if elapsed < 0 {
		t.Errorf("elapsed = %v", elapsed)
	}
}
