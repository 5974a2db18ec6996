// Package schema drops and recreates the tables of every registered model.
package schema

import (
	"context"
	"errors"
	"fmt"

	"kanbanboard/pkg/common/logger"
	"kanbanboard/pkg/common/worker"
	"kanbanboard/pkg/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrNoModels is returned when the registry has nothing to drop or create.
var ErrNoModels = errors.New("no models registered")

// TableStat describes one registered table as it currently exists in the database.
type TableStat struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Rows   int64  `json:"rows"`
}

// Resetter drops and creates the tables of a model registry.
type Resetter struct {
	db       *gorm.DB
	registry *models.Registry
	log      *zerolog.Logger
}

// New binds db to registry. A nil registry means models.Default.
func New(db *gorm.DB, registry *models.Registry) *Resetter {
	if registry == nil {
		registry = models.Default
	}
	return &Resetter{db: db, registry: registry, log: logger.WithComponent("schema")}
}

// models returns the registered models after checking that every one of them
// parses, so a broken model fails the call before any table is touched.
func (r *Resetter) models() ([]any, error) {
	m := r.registry.Models()
	if len(m) == 0 {
		return nil, ErrNoModels
	}
	if _, err := r.registry.TableNames(r.db); err != nil {
		return nil, err
	}
	return m, nil
}

// DropAll drops every registered table, children before parents. Tables
// that do not exist are skipped.
func (r *Resetter) DropAll(ctx context.Context) error {
	values, err := r.models()
	if err != nil {
		return err
	}
	migrator := r.db.WithContext(ctx).Migrator()
	for i := len(values) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := migrator.DropTable(values[i]); err != nil {
			return fmt.Errorf("drop %T: %w", values[i], err)
		}
		r.log.Debug().Str("model", fmt.Sprintf("%T", values[i])).Msg("table dropped")
	}
	r.log.Info().Int("tables", len(values)).Msg("all tables dropped")
	return nil
}

// CreateAll creates every registered table, parents first. Existing tables
// are brought in line with the model rather than recreated.
func (r *Resetter) CreateAll(ctx context.Context) error {
	values, err := r.models()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).AutoMigrate(values...); err != nil {
		return err
	}
	r.log.Info().Int("tables", len(values)).Msg("all tables created")
	return nil
}

// Reset runs DropAll then CreateAll. Nothing is created if the drop fails.
func (r *Resetter) Reset(ctx context.Context) error {
	if err := r.DropAll(ctx); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := r.CreateAll(ctx); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Inspect reports, per registered table in registration order, whether it
// exists and how many rows it holds. Tables are counted concurrently on the
// shared worker pool.
func (r *Resetter) Inspect(ctx context.Context) ([]TableStat, error) {
	names, err := r.registry.TableNames(r.db)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoModels
	}

	stats := make([]TableStat, len(names))
	var g worker.Group
	for i, name := range names {
		stats[i].Name = name
		stat := &stats[i]
		if err := g.Go(func() error { return r.count(ctx, stat) }); err != nil {
			_ = g.Wait()
			return nil, err
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.log.Debug().Fields(worker.StatsSnapshot()).Msg("inspection finished")
	return stats, nil
}

func (r *Resetter) count(ctx context.Context, stat *TableStat) error {
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(stat.Name) {
		return nil
	}
	stat.Exists = true
	if err := db.Table(stat.Name).Count(&stat.Rows).Error; err != nil {
		return fmt.Errorf("count %s: %w", stat.Name, err)
	}
	return nil
}

// Totals sums the existing tables and their rows.
func Totals(stats []TableStat) (tables int, rows int64) {
	for _, s := range stats {
		if s.Exists {
			tables++
			rows += s.Rows
		}
	}
	return tables, rows
}
