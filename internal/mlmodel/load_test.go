package mlmodel

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleArtifact() *Artifact {
	return &Artifact{
		FormatVersion: FormatVersion,
		Name:          "sample",
		Features:      []string{"a", "b"},
		Model: EstimatorSpec{
			Kind:      KindEnsemble,
			Aggregate: AggregateSum,
			Members: []EstimatorSpec{
				{Kind: KindLinear, Intercept: 1, Coefficients: []float64{2, 3}},
				{Kind: KindTree, Nodes: []TreeNode{
					{Feature: 1, Threshold: 0, Left: 1, Right: 2},
					{Left: -1, Right: -1, Value: -1},
					{Left: -1, Right: -1, Value: 1},
				}},
			},
		},
		Probability: &ProbabilitySpec{Kind: ProbaFixed, Probabilities: []float64{0.4, 0.6}},
	}
}

func writeArtifact(t *testing.T, name string, a *Artifact) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	var buf bytes.Buffer
	if err := EncodeArtifact(&buf, name, a); err != nil {
		t.Fatalf("EncodeArtifact(%s): %v", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	v := vec([]string{"a", "b"}, 1, 1)
	for _, name := range []string{"model.json", "model.yaml", "model.yml", "model.json.gz", "model.yaml.zst", "model.bin"} {
		path := writeArtifact(t, name, sampleArtifact())
		m, err := Load(path)
		if err != nil {
			t.Errorf("%s: Load: %v", name, err)
			continue
		}
		y, err := m.Predict(v)
		if err != nil {
			t.Errorf("%s: Predict: %v", name, err)
			continue
		}
		if y != 7 {
			t.Errorf("%s: got %v, want 1+2+3+1 = 7", name, y)
		}
		if m.Name != "sample" || m.Kind != KindEnsemble || !m.SupportsConfidence() {
			t.Errorf("%s: unexpected metadata %+v", name, m)
		}
		if len(m.SHA256) != 64 || m.Size == 0 || m.Path != path {
			t.Errorf("%s: file facts not recorded: sha=%q size=%d path=%q", name, m.SHA256, m.Size, m.Path)
		}
	}
}

func TestLoad_HashCoversFile(t *testing.T) {
	a := writeArtifact(t, "model.json", sampleArtifact())
	b := writeArtifact(t, "model.json.gz", sampleArtifact())
	ma, _ := Load(a)
	mb, _ := Load(b)
	if ma.SHA256 == mb.SHA256 {
		t.Error("compressed and plain files must hash differently")
	}
	again, _ := Load(a)
	if again.SHA256 != ma.SHA256 {
		t.Error("hash is not stable")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/model.json")
	if !errors.Is(err, ErrModelLoad) {
		t.Fatalf("expected ErrModelLoad, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "/nonexistent/model.json") {
		t.Errorf("message does not name the file: %q", err.Error())
	}
}

func TestLoad_Directory(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrModelLoad) {
		t.Fatalf("expected ErrModelLoad, got %v", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"garbage.json":   "\x80\x04\x95 not json",
		"truncated.json": `{"format_version": 1, "features": ["a"`,
		"unknown.json":   `{"format_version": 1, "features": ["a"], "model": {"kind": "constant", "value": 1}, "extra": true}`,
		"unknown.yaml":   "format_version: 1\nfeatures: [a]\nmodel:\n  kind: constant\n  value: 1\n  depth: 3\n",
		"empty.yaml":     "",
		"bad.json.gz":    "not gzip",
		"invalid.json":   `{"format_version": 1, "features": ["a"], "model": {"kind": "linear", "coefficients": [1, 2]}}`,
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte(content), 0644)
		if _, err := Load(path); !errors.Is(err, ErrModelLoad) {
			t.Errorf("%s: expected ErrModelLoad, got %v", name, err)
		}
	}
}

func TestDecodeArtifact_SniffsFormat(t *testing.T) {
	a, err := DecodeArtifact("model", []byte("format_version: 1\nfeatures: [a]\nmodel: {kind: constant, value: 2}\n"))
	if err != nil {
		t.Fatalf("DecodeArtifact yaml: %v", err)
	}
	if a.Model.Value == nil || *a.Model.Value != 2 {
		t.Errorf("unexpected model %+v", a.Model)
	}

	a, err = DecodeArtifact("model", []byte(` {"format_version": 1, "features": ["a"], "model": {"kind": "constant", "value": 3}}`))
	if err != nil {
		t.Fatalf("DecodeArtifact json: %v", err)
	}
	if *a.Model.Value != 3 {
		t.Errorf("unexpected model %+v", a.Model)
	}
}
