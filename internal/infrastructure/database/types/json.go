package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/eslsoft/readflow/internal/entity"
)

// BlockList maps the bundles.blocks jsonb column.
type BlockList []entity.ContentBlock

// CollocationMap maps the bundles.collocations jsonb column, keyed by global
// sentence index.
type CollocationMap map[int][]entity.Collocation

// SentenceList maps the legacy bundles.sentences jsonb column.
type SentenceList []string

// MetadataMap maps the bundles.metadata jsonb column.
type MetadataMap map[string]any

// Scan implements sql.Scanner.
func (v *BlockList) Scan(src any) error { return scanJSON(src, v, "BlockList") }

// Value implements driver.Valuer.
func (v BlockList) Value() (driver.Value, error) { return valueJSON(v) }

// Scan implements sql.Scanner.
func (v *CollocationMap) Scan(src any) error { return scanJSON(src, v, "CollocationMap") }

// Value implements driver.Valuer.
func (v CollocationMap) Value() (driver.Value, error) { return valueJSON(v) }

// Scan implements sql.Scanner.
func (v *SentenceList) Scan(src any) error { return scanJSON(src, v, "SentenceList") }

// Value implements driver.Valuer.
func (v SentenceList) Value() (driver.Value, error) { return valueJSON(v) }

// Scan implements sql.Scanner.
func (v *MetadataMap) Scan(src any) error { return scanJSON(src, v, "MetadataMap") }

// Value implements driver.Valuer.
func (v MetadataMap) Value() (driver.Value, error) { return valueJSON(v) }

func scanJSON(src, dest any, name string) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dest)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("%s: unsupported src type %T", name, src)
	}
}

func valueJSON(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}
