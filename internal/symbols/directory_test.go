package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hankli/FinSeriesGo/internal/finsource"
)

func TestLoadDirectoryBundled(t *testing.T) {
	dir := LoadDirectory("")
	if dir.Size() == 0 {
		t.Fatal("bundled directory should not be empty")
	}
	if _, ok := dir.Lookup("MSFT"); !ok {
		t.Error("expected MSFT in bundled directory")
	}
	if _, ok := dir.Lookup("^GSPC"); !ok {
		t.Error("expected ^GSPC in bundled directory")
	}
	if _, ok := dir.Lookup("BTCUSD"); !ok {
		t.Error("expected BTCUSD in bundled directory")
	}
}

func TestLoadDirectoryFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.json")
	content := `[{"trading_symbol": "zzzz", "registrant_name": "Test Corp"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	dir := LoadDirectory(path)
	if dir.Size() != 1 {
		t.Fatalf("expected 1 entry, got %d", dir.Size())
	}
	// Keys are uppercased at load time.
	name, ok := dir.Lookup("ZZZZ")
	if !ok || name != "Test Corp" {
		t.Errorf("expected ZZZZ -> Test Corp, got %q (ok=%v)", name, ok)
	}
}

func TestLoadDirectoryMissingFileFallsBack(t *testing.T) {
	dir := LoadDirectory(filepath.Join(t.TempDir(), "nope.json"))
	if dir.Size() == 0 {
		t.Fatal("missing override should fall back to the bundled dataset")
	}
}

func TestNewDirectoryDeduplicates(t *testing.T) {
	dir := NewDirectory([]finsource.SymbolEntry{
		{TradingSymbol: "aapl", RegistrantName: "Apple Inc."},
		{TradingSymbol: "AAPL", RegistrantName: "Duplicate"},
		{TradingSymbol: "", RegistrantName: "No symbol"},
	})
	if dir.Size() != 1 {
		t.Fatalf("expected 1 entry, got %d", dir.Size())
	}
	name, _ := dir.Lookup("aapl")
	if name != "Apple Inc." {
		t.Errorf("first occurrence should win, got %q", name)
	}
}

func TestDirectoryWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synced.json")
	dir := NewDirectory([]finsource.SymbolEntry{
		{TradingSymbol: "MSFT", RegistrantName: "Microsoft Corporation"},
		{TradingSymbol: "^DJI", RegistrantName: "Dow Jones Industrial Average"},
	})
	if err := dir.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reloaded := LoadDirectory(path)
	if reloaded.Size() != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", reloaded.Size())
	}
	if _, ok := reloaded.Lookup("^DJI"); !ok {
		t.Error("expected ^DJI after reload")
	}
}
