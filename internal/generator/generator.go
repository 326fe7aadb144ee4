// Package generator builds a complete ERP seed fixture: users, suppliers,
// products with their variants, purchase orders, sales and low-stock alerts.
package generator

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/fixture"
	"github.com/dbsmedya/erpfixture/internal/graph"
	"github.com/dbsmedya/erpfixture/internal/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator produces fixture records. A Generator is single-use per call to
// Generate and not safe for concurrent use; the faker it owns is stateful.
type Generator struct {
	faker  *gofakeit.Faker
	now    func() time.Time
	titler cases.Caser
	logger *logger.Logger
}

// New creates a generator. A seed of 0 seeds the faker from a random source;
// any other value makes the output reproducible together with WithClock.
func New(seed int64, log *logger.Logger, opts ...Option) *Generator {
	if log == nil {
		log = logger.NewDefault()
	}

	g := &Generator{
		faker:  gofakeit.New(seed),
		now:    time.Now,
		titler: cases.Title(language.English),
		logger: log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ids holds the identifiers handed out by earlier steps so later steps can
// reference them.
type ids struct {
	suppliers []int64
	products  []int64
	variants  []int64
}

// Generate builds a fresh registry holding the full fixture. Any failure
// aborts the run; no partial registry is returned.
func (g *Generator) Generate() (*fixture.Registry, error) {
	if err := g.checkOrder(); err != nil {
		return nil, err
	}

	reg := fixture.NewRegistry(catalog.Keys()...)
	var refs ids

	steps := []struct {
		name string
		run  func(*fixture.Registry, *ids) error
	}{
		{"users", g.addUsers},
		{"suppliers", g.addSuppliers},
		{"products", g.addProducts},
		{"orders", g.addOrders},
		{"sales", g.addSales},
		{"alerts", g.addAlerts},
	}

	for _, step := range steps {
		before := reg.Len()
		if err := step.run(reg, &refs); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", step.name, err)
		}
		g.logger.WithStep(step.name).Debugf("Added %d records", reg.Len()-before)
	}

	g.logger.Infof("Generated %d records across %d models", reg.Len(), len(reg.Counts()))
	return reg, nil
}

// checkOrder confirms that the fixed generation order respects every
// reference in the catalog.
func (g *Generator) checkOrder() error {
	dg, err := graph.BuildFromCatalog()
	if err != nil {
		return fmt.Errorf("failed to build entity graph: %w", err)
	}
	if err := dg.ValidateOrder(catalog.Models()); err != nil {
		return fmt.Errorf("generation order is invalid: %w", err)
	}
	return nil
}

// timestamp returns now minus the given number of days in the fixture layout.
func (g *Generator) timestamp(daysAgo int) string {
	return g.now().UTC().AddDate(0, 0, -daysAgo).Format(catalog.TimestampLayout)
}

// pick returns a uniformly chosen element of ids.
func (g *Generator) pick(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("nothing to pick from")
	}
	return ids[g.faker.IntRange(0, len(ids)-1)], nil
}
