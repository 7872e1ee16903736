package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("default_confidence: 0.6\nworkers: 4\nlog_level: debug\nlog_format: json\n"), 0644)

	c := Config{LogFormat: "text", LogLevel: "disabled"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.DefaultConfidence != 0.6 {
		t.Errorf("expected default confidence 0.6, got %v", c.DefaultConfidence)
	}
	if c.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", c.Workers)
	}
	if c.LogLevel != "debug" || c.LogFormat != "json" {
		t.Errorf("unexpected log settings: %q %q", c.LogLevel, c.LogFormat)
	}
}

func TestLoadFromFile_PartialKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("workers: 2\n"), 0644)

	c := Config{LogFormat: "text", LogLevel: "warn", DefaultConfidence: 0.9}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.LogLevel != "warn" || c.LogFormat != "text" || c.DefaultConfidence != 0.9 {
		t.Errorf("existing values overwritten: %+v", c)
	}
}

func TestLoadFromFile_ConfidenceOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("default_confidence: 1.5\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for confidence above 1")
	}
}

func TestLoadFromFile_ZeroConfidence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("default_confidence: 0\n"), 0644)

	c := Config{DefaultConfidence: 0.85}
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for zero confidence")
	}
	if c.DefaultConfidence != 0.85 {
		t.Errorf("rejected value was applied: %v", c.DefaultConfidence)
	}
}

func TestCheckConfidence(t *testing.T) {
	for _, v := range []float64{0.01, 0.5, 0.85, 1} {
		if err := CheckConfidence(v); err != nil {
			t.Errorf("CheckConfidence(%v): %v", v, err)
		}
	}
	for _, v := range []float64{0, -0.1, 1.01} {
		if err := CheckConfidence(v); err == nil {
			t.Errorf("CheckConfidence(%v): expected error", v)
		}
	}
}

func TestLoadFromFile_UnknownLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("log_level: chatty\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	err := c.LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateBatch(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	inputPath := filepath.Join(dir, "records.jsonl")
	os.WriteFile(modelPath, []byte("{}"), 0644)
	os.WriteFile(inputPath, []byte("{}\n"), 0644)

	c := Config{ModelPath: modelPath, InputPath: inputPath}
	if err := c.ValidateBatch(); err == nil {
		t.Fatal("expected error for missing output")
	}

	c.OutputPath = inputPath
	if err := c.ValidateBatch(); err == nil {
		t.Fatal("expected error when output equals input")
	}

	c.OutputPath = filepath.Join(dir, "out.jsonl")
	if err := c.ValidateBatch(); err != nil {
		t.Fatalf("ValidateBatch: %v", err)
	}

	c.ModelPath = filepath.Join(dir, "missing.json")
	if err := c.ValidateBatch(); err == nil {
		t.Fatal("expected error for missing model")
	}
}
