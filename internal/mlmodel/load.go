package mlmodel

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Load reads, validates and builds the model artifact at path. The file is
// opened once and closed before Load returns. Every failure wraps
// ErrModelLoad.
func Load(path string) (*Model, error) {
	m, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	return m, nil
}

func load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	h := sha256.New()
	rc, inner, err := decompress(path, io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	// Drain anything a decompressor left unread so the hash covers the file.
	if _, err := io.Copy(io.Discard, io.TeeReader(f, h)); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	a, err := DecodeArtifact(inner, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := Build(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	m.SHA256 = fmt.Sprintf("%x", h.Sum(nil))
	m.Size = stat.Size()
	return m, nil
}

// Build validates an artifact and assembles its Model.
func Build(a *Artifact) (*Model, error) {
	if a.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported format_version %d (want %d)", a.FormatVersion, FormatVersion)
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("artifact lists no features")
	}
	seen := make(map[string]bool, len(a.Features))
	for _, name := range a.Features {
		if seen[name] {
			return nil, fmt.Errorf("duplicate feature %q", name)
		}
		seen[name] = true
	}

	reg, err := buildEstimator(a.Model, len(a.Features))
	if err != nil {
		return nil, err
	}
	var proba ProbabilityEstimator
	if a.Probability != nil {
		proba, err = buildProbability(*a.Probability, len(a.Features))
		if err != nil {
			return nil, err
		}
	}

	m := New(a.Features, reg, proba)
	m.Name = a.Name
	m.Kind = a.Model.Kind
	return m, nil
}
