package mlmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// decompress wraps r according to the outer extension of path and returns
// the path with that extension removed.
func decompress(path string, r io.Reader) (io.ReadCloser, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, "", fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, strings.TrimSuffix(path, filepath.Ext(path)), nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, "", fmt.Errorf("open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), strings.TrimSuffix(path, filepath.Ext(path)), nil
	}
	return io.NopCloser(r), path, nil
}

// DecodeArtifact parses an artifact document, choosing JSON or YAML by the
// extension of name and by content otherwise. Unknown keys are rejected.
func DecodeArtifact(name string, data []byte) (*Artifact, error) {
	var a Artifact
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := decodeYAML(data, &a); err != nil {
			return nil, err
		}
	case ".json":
		if err := decodeJSON(data, &a); err != nil {
			return nil, err
		}
	default:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			if err := decodeJSON(data, &a); err != nil {
				return nil, err
			}
		} else if err := decodeYAML(data, &a); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func decodeJSON(data []byte, a *Artifact) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(a); err != nil {
		return fmt.Errorf("decode json artifact: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, a *Artifact) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(a); err != nil {
		if err == io.EOF {
			return fmt.Errorf("decode yaml artifact: empty document")
		}
		return fmt.Errorf("decode yaml artifact: %w", err)
	}
	return nil
}

// EncodeArtifact writes a as JSON or YAML by the extension of name, with
// gzip or zstd compression when name carries a .gz or .zst suffix.
func EncodeArtifact(w io.Writer, name string, a *Artifact) error {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz":
		zw := gzip.NewWriter(w)
		if err := EncodeArtifact(zw, strings.TrimSuffix(name, filepath.Ext(name)), a); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case ".zst", ".zstd":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("open zstd writer: %w", err)
		}
		if err := EncodeArtifact(zw, strings.TrimSuffix(name, filepath.Ext(name)), a); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("encode yaml artifact: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("encode json artifact: %w", err)
		}
		return nil
	}
}
