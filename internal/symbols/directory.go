package symbols

import (
	_ "embed"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/hankli/FinSeriesGo/internal/finsource"
)

//go:embed data/stock_symbols.json
var bundledSymbols []byte

// Directory is the load-once symbol catalog: uppercase trading symbol to
// registrant name. It is never mutated after construction, so concurrent
// reads need no locking.
type Directory struct {
	entries []finsource.SymbolEntry
	byName  map[string]string
}

// LoadDirectory builds the directory from the dataset at path, or from the
// bundled catalog when path is empty. A directory that fails to load is
// returned empty rather than as an error: resolution degrades to
// pass-through so retrieval stays available without local validation.
func LoadDirectory(path string) *Directory {
	data := bundledSymbols
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			log.Printf("symbol directory %s unavailable, falling back to bundled dataset: %v", path, err)
		} else {
			data = fileData
		}
	}

	var raw []finsource.SymbolEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("symbol directory unreadable, resolution disabled: %v", err)
		return &Directory{byName: map[string]string{}}
	}

	return NewDirectory(raw)
}

// NewDirectory builds a directory directly from catalog entries, e.g. a
// freshly synced upstream listing. Symbols are uppercased and the first
// occurrence of a duplicate key wins.
func NewDirectory(entries []finsource.SymbolEntry) *Directory {
	dir := &Directory{
		entries: make([]finsource.SymbolEntry, 0, len(entries)),
		byName:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.TradingSymbol == "" {
			continue
		}
		sym := strings.ToUpper(e.TradingSymbol)
		if _, dup := dir.byName[sym]; dup {
			continue
		}
		dir.entries = append(dir.entries, finsource.SymbolEntry{
			TradingSymbol:  sym,
			RegistrantName: e.RegistrantName,
		})
		dir.byName[sym] = e.RegistrantName
	}
	return dir
}

// Lookup returns the registrant name for an exact uppercase symbol key.
func (d *Directory) Lookup(symbol string) (string, bool) {
	name, ok := d.byName[strings.ToUpper(symbol)]
	return name, ok
}

// Size reports the number of known symbols. Zero means the directory failed
// to load and validation is skipped.
func (d *Directory) Size() int {
	return len(d.entries)
}

// Entries returns the catalog in load order for name scans.
func (d *Directory) Entries() []finsource.SymbolEntry {
	return d.entries
}

// WriteFile persists the directory dataset, used by the symbols sync command.
func (d *Directory) WriteFile(path string) error {
	data, err := json.MarshalIndent(d.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
