package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/bedpredict/internal/model"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 1 << 20

// Item is one input record, or the error that prevented decoding it.
type Item struct {
	RowNumber int64
	Record    *model.InputRecord
	Err       error
}

// Source streams input records.
type Source interface {
	// Read fills up to len(buf) items and returns how many were read,
	// with io.EOF once the input is exhausted.
	Read(buf []Item) (int, error)
	Close() error
}

// OpenSource opens a .parquet or .jsonl input file.
func OpenSource(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return openParquet(path)
	case ".jsonl", ".ndjson":
		return openJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .parquet or .jsonl)", filepath.Ext(path))
	}
}

// parquetSource streams rows of a Parquet file and decodes them into
// InputRecords through the columns bound by ValidateSchema.
type parquetSource struct {
	file    *os.File
	reader  *parquet.Reader
	columns []inputColumn
	rows    []parquet.Row
	values  []parquet.Value
	rowNum  int64
}

func openParquet(path string) (*parquetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	columns, err := bindColumns(pf.Schema())
	if err != nil {
		f.Close()
		return nil, err
	}

	return &parquetSource{
		file:    f,
		reader:  parquet.NewReader(pf),
		columns: columns,
		values:  make([]parquet.Value, len(pf.Schema().Columns())),
	}, nil
}

// NumRows returns the total number of rows in the Parquet file.
func (s *parquetSource) NumRows() int64 {
	return s.reader.NumRows()
}

func (s *parquetSource) Read(buf []Item) (int, error) {
	if cap(s.rows) < len(buf) {
		s.rows = make([]parquet.Row, len(buf))
	}
	rows := s.rows[:len(buf)]
	n, err := s.reader.ReadRows(rows)
	for i := 0; i < n; i++ {
		s.rowNum++
		rec, decodeErr := s.decode(rows[i])
		buf[i] = Item{RowNumber: s.rowNum, Record: rec, Err: decodeErr}
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// decode converts one row into an InputRecord. NULL in a required column is
// reported like an absent JSON key.
func (s *parquetSource) decode(row parquet.Row) (*model.InputRecord, error) {
	clear(s.values)
	for _, v := range row {
		if c := v.Column(); c >= 0 && c < len(s.values) {
			s.values[c] = v
		}
	}

	rec := &model.InputRecord{}
	var missing []string
	for _, col := range s.columns {
		v := s.values[col.index]
		switch col.name {
		case "hospital_id":
			if !v.IsNull() {
				rec.HospitalID = string(v.ByteArray())
			}
			continue
		case "date":
			if !v.IsNull() {
				rec.Date = string(v.ByteArray())
			}
			continue
		}
		if v.IsNull() {
			missing = append(missing, col.name)
			continue
		}
		switch p := rec.Field(col.name).(type) {
		case *float64:
			*p = numberValue(v)
		case *bool:
			*p = flagValue(v)
		case *string:
			*p = string(v.ByteArray())
		}
	}
	if len(missing) > 0 {
		return nil, &model.MissingFieldError{Fields: missing}
	}
	return rec, nil
}

func numberValue(v parquet.Value) float64 {
	switch v.Kind() {
	case parquet.Float:
		return float64(v.Float())
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	default:
		return v.Double()
	}
}

func flagValue(v parquet.Value) bool {
	switch v.Kind() {
	case parquet.Int32:
		return v.Int32() != 0
	case parquet.Int64:
		return v.Int64() != 0
	default:
		return v.Boolean()
	}
}

func (s *parquetSource) Close() error {
	if err := s.reader.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// jsonlSource reads one JSON object per line. Blank lines are skipped but
// still counted, so RowNumber is the line number.
type jsonlSource struct {
	file    *os.File
	scanner *bufio.Scanner
	lineNum int64
}

func openJSONL(path string) (*jsonlSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jsonl file: %w", err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &jsonlSource{file: f, scanner: sc}, nil
}

func (s *jsonlSource) Read(buf []Item) (int, error) {
	n := 0
	for n < len(buf) {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return n, fmt.Errorf("read jsonl line %d: %w", s.lineNum+1, err)
			}
			return n, io.EOF
		}
		s.lineNum++
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := model.ParseInput(line)
		buf[n] = Item{RowNumber: s.lineNum, Record: rec, Err: err}
		n++
	}
	return n, nil
}

func (s *jsonlSource) Close() error {
	return s.file.Close()
}
