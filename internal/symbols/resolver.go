package symbols

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ResolveError reports a failed resolution with the stages that were tried,
// shaped for direct user display.
type ResolveError struct {
	Input     string
	Attempted []string
	Known     int
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf(
		"trading symbol %q not found after %d lookup stages (%s); %d symbols are currently supported, check the symbol or company name",
		e.Input, len(e.Attempted), strings.Join(e.Attempted, ", "), e.Known,
	)
}

// Resolver maps arbitrary user input to a validated trading symbol through an
// ordered chain of independent stages. The first stage to produce a directory
// hit wins.
type Resolver struct {
	dir       *Directory
	extractor Extractor
}

// NewResolver builds a resolver over the directory. extractor may be nil,
// which skips the model-assisted stage.
func NewResolver(dir *Directory, extractor Extractor) *Resolver {
	return &Resolver{dir: dir, extractor: extractor}
}

type stage struct {
	name string
	run  func(ctx context.Context, input string) (string, bool)
}

func (r *Resolver) stages() []stage {
	chain := []stage{
		{name: "direct match", run: r.directMatch},
	}
	if r.extractor != nil {
		chain = append(chain, stage{name: "model extraction", run: r.modelExtract})
	}
	chain = append(chain, stage{name: "company name match", run: r.nameMatch})
	return chain
}

// Resolve validates or infers a trading symbol from input. With an empty
// directory the input passes through unvalidated.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	if r.dir.Size() == 0 {
		log.Printf("symbol directory empty, accepting %q without validation", input)
		return input, nil
	}

	attempted := make([]string, 0, 3)
	for _, st := range r.stages() {
		attempted = append(attempted, st.name)
		if symbol, ok := st.run(ctx, input); ok {
			return symbol, nil
		}
	}

	return "", &ResolveError{Input: input, Attempted: attempted, Known: r.dir.Size()}
}

func (r *Resolver) directMatch(_ context.Context, input string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(input))
	if _, ok := r.dir.Lookup(upper); ok {
		return upper, true
	}
	return "", false
}

func (r *Resolver) modelExtract(ctx context.Context, input string) (string, bool) {
	symbol, err := r.extractor.Extract(ctx, input)
	if err != nil {
		log.Printf("model extraction for %q failed: %v", input, err)
		return "", false
	}
	if symbol == "" {
		return "", false
	}
	if _, ok := r.dir.Lookup(symbol); ok {
		return symbol, true
	}
	return "", false
}

// nameMatch scans registrant names: exact equality first, then input
// contained in a name, then a name contained in the input.
func (r *Resolver) nameMatch(_ context.Context, input string) (string, bool) {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return "", false
	}

	for _, e := range r.dir.Entries() {
		if e.RegistrantName != "" && query == strings.ToLower(e.RegistrantName) {
			return e.TradingSymbol, true
		}
	}
	for _, e := range r.dir.Entries() {
		if e.RegistrantName != "" && strings.Contains(strings.ToLower(e.RegistrantName), query) {
			return e.TradingSymbol, true
		}
	}
	for _, e := range r.dir.Entries() {
		if e.RegistrantName != "" && strings.Contains(query, strings.ToLower(e.RegistrantName)) {
			return e.TradingSymbol, true
		}
	}
	return "", false
}
