// Package verifier checks the integrity of a generated fixture.
package verifier

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/fixture"
	"github.com/dbsmedya/erpfixture/internal/graph"
	"github.com/dbsmedya/erpfixture/internal/logger"
)

// VerificationMethod defines how thoroughly a fixture is checked.
type VerificationMethod string

const (
	// MethodCount only compares per-model record counts (fast)
	MethodCount VerificationMethod = "count"
	// MethodFull checks counts, identifiers, references and sale totals
	MethodFull VerificationMethod = "full"
	// MethodSkip skips verification entirely
	MethodSkip VerificationMethod = "skip"
)

// ErrVerificationFailed is matched by every *VerificationError.
var ErrVerificationFailed = errors.New("fixture verification failed")

// Violation describes one broken property of a fixture.
type Violation struct {
	Index   int    // position of the offending record, -1 for whole-model checks
	Model   string
	PK      int64
	Message string
}

func (v Violation) String() string {
	if v.Index < 0 {
		return fmt.Sprintf("%s: %s", v.Model, v.Message)
	}
	return fmt.Sprintf("record %d (%s pk=%d): %s", v.Index, v.Model, v.PK, v.Message)
}

// VerificationError lists every violation found in a fixture.
type VerificationError struct {
	Violations []Violation
}

func (e *VerificationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, fmt.Sprintf("%s: %d violation(s)", ErrVerificationFailed, len(e.Violations)))
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	return strings.Join(lines, "\n")
}

// Is reports whether target is ErrVerificationFailed.
func (e *VerificationError) Is(target error) bool {
	return target == ErrVerificationFailed
}

// VerifyResult holds verification results for a single model.
type VerifyResult struct {
	Model    string
	Expected int
	Actual   int
	Digest   string // SHA256 over the model's records in file order, full method only
	Match    bool
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	RecordsVerified   int
	ModelsVerified    int
	ModelsPassed      int
	ModelsFailed      int
	ReferencesChecked int
	Violations        int
	Method            VerificationMethod
	Results           []VerifyResult // in generation order
}

// Verifier checks records against the entity dependency graph.
type Verifier struct {
	graph  *graph.Graph
	method VerificationMethod
	logger *logger.Logger
}

// NewVerifier creates a new verifier for the given graph.
func NewVerifier(g *graph.Graph, method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	if method == "" {
		method = MethodFull
	}
	switch method {
	case MethodCount, MethodFull, MethodSkip:
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", method)
	}

	return &Verifier{
		graph:  g,
		method: method,
		logger: log,
	}, nil
}

// Verify checks records and returns statistics. When any check fails the
// stats are still returned together with a *VerificationError.
func (v *Verifier) Verify(records []fixture.Record) (*VerifyStats, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return &VerifyStats{Method: MethodSkip}, nil
	}

	order, err := v.graph.GenerationOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to get generation order: %w", err)
	}

	stats := &VerifyStats{
		Method:          v.method,
		RecordsVerified: len(records),
	}
	var violations []Violation

	v.logger.Infof("Starting verification (method=%s) for %d records", v.method, len(records))

	if v.method == MethodFull {
		violations = append(violations, v.checkRecords(records, stats)...)
	}

	counts := make(map[string]int)
	for i, r := range records {
		if !v.graph.HasNode(r.Model) {
			violations = append(violations, Violation{Index: i, Model: r.Model, PK: r.PK, Message: "unknown model"})
			continue
		}
		counts[r.Model]++
	}

	expectedTotal := 0
	for _, model := range order {
		node := v.graph.GetNode(model)
		expectedTotal += node.Count

		result := VerifyResult{
			Model:    model,
			Expected: node.Count,
			Actual:   counts[model],
			Match:    node.Count == counts[model],
		}
		if v.method == MethodFull {
			result.Digest = digest(records, model)
		}

		stats.ModelsVerified++
		if result.Match {
			stats.ModelsPassed++
			v.logger.WithEntity(model).Debugf("Verification PASSED (%d records)", result.Actual)
		} else {
			stats.ModelsFailed++
			violations = append(violations, Violation{
				Index:   -1,
				Model:   model,
				Message: fmt.Sprintf("count mismatch: expected=%d, actual=%d", result.Expected, result.Actual),
			})
		}
		stats.Results = append(stats.Results, result)
	}

	if len(records) != expectedTotal {
		violations = append(violations, Violation{
			Index:   -1,
			Model:   "*",
			Message: fmt.Sprintf("total mismatch: expected=%d, actual=%d", expectedTotal, len(records)),
		})
	}

	stats.Violations = len(violations)
	v.logger.Infof("Verification complete: %d models verified, %d passed, %d failed, %d references, %d violations",
		stats.ModelsVerified, stats.ModelsPassed, stats.ModelsFailed, stats.ReferencesChecked, stats.Violations)

	if len(violations) > 0 {
		for _, viol := range violations {
			v.logger.Errorf("Verification FAILED: %s", viol)
		}
		return stats, &VerificationError{Violations: violations}
	}
	return stats, nil
}

// checkRecords walks records in file order and checks identifiers,
// references and sale totals.
func (v *Verifier) checkRecords(records []fixture.Record, stats *VerifyStats) []Violation {
	var violations []Violation
	seen := make(map[string]map[int64]fixture.Record)
	lastPK := make(map[string]int64)

	for i, r := range records {
		if !v.graph.HasNode(r.Model) {
			continue
		}
		fail := func(format string, args ...interface{}) {
			violations = append(violations, Violation{Index: i, Model: r.Model, PK: r.PK, Message: fmt.Sprintf(format, args...)})
		}

		if want := lastPK[r.Model] + 1; r.PK != want {
			fail("pk out of sequence: expected %d", want)
		}
		lastPK[r.Model] = r.PK

		for _, parent := range v.graph.GetParents(r.Model) {
			for _, field := range v.graph.GetEdgeMeta(parent, r.Model).ForeignKeys {
				stats.ReferencesChecked++
				target, ok := r.Fields.Int64(field)
				if !ok {
					fail("reference field %q is missing or not an integer", field)
					continue
				}
				if _, ok := seen[parent][target]; !ok {
					fail("%s=%d does not name an earlier %s record", field, target, parent)
				}
			}
		}

		if r.Model == catalog.ModelSale {
			if msg := checkSaleTotal(r, seen[catalog.ModelVariant]); msg != "" {
				fail("%s", msg)
			}
		}

		if seen[r.Model] == nil {
			seen[r.Model] = make(map[int64]fixture.Record)
		}
		if _, dup := seen[r.Model][r.PK]; !dup {
			seen[r.Model][r.PK] = r
		}
	}

	return violations
}

// checkSaleTotal returns a message when the sale's total is not quantity
// times the referenced variant's price. A missing variant is reported by the
// reference check.
func checkSaleTotal(sale fixture.Record, variants map[int64]fixture.Record) string {
	vid, ok := sale.Fields.Int64(catalog.FieldVariant)
	if !ok {
		return ""
	}
	variant, ok := variants[vid]
	if !ok {
		return ""
	}

	qty, ok := sale.Fields.Int64(catalog.FieldQuantity)
	if !ok {
		return fmt.Sprintf("%s is missing or not an integer", catalog.FieldQuantity)
	}
	total, ok := sale.Fields.Int64(catalog.FieldTotalPrice)
	if !ok {
		return fmt.Sprintf("%s is missing or not an integer", catalog.FieldTotalPrice)
	}
	price, ok := variant.Fields.Int64(catalog.FieldPrice)
	if !ok {
		return fmt.Sprintf("variant pk=%d has no integer %s", vid, catalog.FieldPrice)
	}

	if total != price*qty {
		return fmt.Sprintf("%s=%d, expected %d x %d = %d", catalog.FieldTotalPrice, total, qty, price, price*qty)
	}
	return ""
}

// digest computes a SHA256 over every record of model, in file order.
func digest(records []fixture.Record, model string) string {
	hasher := sha256.New()
	for _, r := range records {
		if r.Model != model {
			continue
		}
		hasher.Write([]byte(serializeRecord(r)))
		hasher.Write([]byte("\n"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// serializeRecord converts a record to a deterministic string representation
// for hashing. Format: pk=1\x00field1=val1\x00field2=val2...
func serializeRecord(r fixture.Record) string {
	parts := []string{fmt.Sprintf("pk=%d", r.PK)}

	for _, key := range r.Fields.Keys() {
		val, _ := r.Fields.Get(key)
		var valStr string

		switch v := val.(type) {
		case nil:
			valStr = "NULL"
		case int64:
			valStr = fmt.Sprintf("%d", v)
		case float64:
			valStr = fmt.Sprintf("%f", v)
		case bool:
			valStr = fmt.Sprintf("%t", v)
		case string:
			valStr = v
		default:
			valStr = fmt.Sprintf("%v", v)
		}

		parts = append(parts, fmt.Sprintf("%s=%s", key, valStr))
	}

	// Use null byte separator to avoid ambiguity with values containing commas
	return strings.Join(parts, "\x00")
}
