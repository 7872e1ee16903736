package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/bedpredict/internal/model"
)

// Sink receives prediction rows in input order.
type Sink interface {
	Write(rows []model.PredictionRow) error
	Close() error
}

// CreateSink creates a .parquet or .jsonl output file, truncating any
// existing file.
func CreateSink(path string) (Sink, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		return &parquetSink{file: f, writer: parquet.NewGenericWriter[model.PredictionRow](f)}, nil
	case ".jsonl", ".ndjson":
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		w := bufio.NewWriter(f)
		return &jsonlSink{file: f, buf: w, enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want .parquet or .jsonl)", filepath.Ext(path))
	}
}

type parquetSink struct {
	file   *os.File
	writer *parquet.GenericWriter[model.PredictionRow]
}

func (s *parquetSink) Write(rows []model.PredictionRow) error {
	if _, err := s.writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return nil
}

func (s *parquetSink) Close() error {
	if err := s.writer.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return s.file.Close()
}

type jsonlSink struct {
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

func (s *jsonlSink) Write(rows []model.PredictionRow) error {
	for i := range rows {
		if err := s.enc.Encode(&rows[i]); err != nil {
			return fmt.Errorf("write jsonl row %d: %w", rows[i].RowNumber, err)
		}
	}
	return nil
}

func (s *jsonlSink) Close() error {
	if err := s.buf.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush jsonl: %w", err)
	}
	return s.file.Close()
}
