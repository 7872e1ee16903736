package batch

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/bedpredict/internal/model"
)

// ErrSchema marks a Parquet input whose schema cannot supply input records.
var ErrSchema = errors.New("invalid input schema")

// metadataColumns are optional pass-through columns copied to the output.
var metadataColumns = []string{"hospital_id", "date"}

var (
	numberKinds = []parquet.Kind{parquet.Double, parquet.Float, parquet.Int32, parquet.Int64}
	flagKinds   = []parquet.Kind{parquet.Boolean, parquet.Int32, parquet.Int64}
	labelKinds  = []parquet.Kind{parquet.ByteArray}
)

// inputColumn binds an input field to a leaf column of the file.
type inputColumn struct {
	name  string
	index int
}

// ValidateSchema checks that a Parquet input schema has every required
// input column, matched by exact name, as a flat column of a readable type.
// Numeric fields accept DOUBLE, FLOAT, INT32 and INT64; flags accept BOOLEAN
// or an integer (non-zero is true); categories must be BYTE_ARRAY.
func ValidateSchema(schema *parquet.Schema) error {
	_, err := bindColumns(schema)
	return err
}

func bindColumns(schema *parquet.Schema) ([]inputColumn, error) {
	var (
		columns []inputColumn
		missing []string
	)
	for _, name := range model.RequiredFields() {
		leaf, ok := schema.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if err := checkLeaf(name, leaf, acceptedKinds(name)); err != nil {
			return nil, err
		}
		columns = append(columns, inputColumn{name: name, index: leaf.ColumnIndex})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrSchema, strings.Join(missing, ", "))
	}

	for _, name := range metadataColumns {
		leaf, ok := schema.Lookup(name)
		if !ok {
			continue
		}
		if err := checkLeaf(name, leaf, labelKinds); err != nil {
			return nil, err
		}
		columns = append(columns, inputColumn{name: name, index: leaf.ColumnIndex})
	}
	return columns, nil
}

func checkLeaf(name string, leaf parquet.LeafColumn, kinds []parquet.Kind) error {
	if !leaf.Node.Leaf() {
		return fmt.Errorf("%w: column %s is a group, want a leaf column", ErrSchema, name)
	}
	if leaf.MaxRepetitionLevel > 0 {
		return fmt.Errorf("%w: column %s is repeated", ErrSchema, name)
	}
	if got := leaf.Node.Type().Kind(); !slices.Contains(kinds, got) {
		return fmt.Errorf("%w: column %s is %s, want one of %v", ErrSchema, name, got, kinds)
	}
	return nil
}

func acceptedKinds(name string) []parquet.Kind {
	switch (&model.InputRecord{}).Field(name).(type) {
	case *bool:
		return flagKinds
	case *string:
		return labelKinds
	default:
		return numberKinds
	}
}
