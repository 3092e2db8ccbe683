package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathctx/internal/catalog"
)

var contextColumns = []string{
	"id", "position", "name", "category", "description", "value_min", "value_max",
	"unit", "data_label", "minimal_template", "standard_template", "rich_template",
	"variations", "updated_at",
}

type contextRepo struct {
	db *sql.DB
}

func (r *contextRepo) Replace(ctx context.Context, defs []catalog.ContextDefinition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Delete(contextsTable).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear contexts: %w", err)
	}

	if len(defs) > 0 {
		now := time.Now().UTC()
		ins := b.Insert(contextsTable).Columns(contextColumns...)
		for i, d := range defs {
			ins.Values(
				d.ID,
				i,
				d.Name,
				d.Category,
				d.Description,
				d.ValueMin,
				d.ValueMax,
				d.Unit,
				d.DataLabel,
				d.Templates[catalog.LevelMinimal],
				d.Templates[catalog.LevelStandard],
				d.Templates[catalog.LevelRich],
				joinVariations(d.Variations),
				now,
			)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert contexts: %w", err)
		}
	}

	return tx.Commit()
}

func (r *contextRepo) Rows(ctx context.Context) ([]catalog.Row, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(contextColumns[:len(contextColumns)-1]...).
		From(entsql.Table(contextsTable)).
		OrderBy("position").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contexts: %w", err)
	}
	defer rows.Close()

	var out []catalog.Row
	for rows.Next() {
		var (
			id, name, category, description, unit, label string
			minimal, standard, rich, variations          string
			position                                     int
			lo, hi                                       float64
		)
		if err := rows.Scan(&id, &position, &name, &category, &description, &lo, &hi,
			&unit, &label, &minimal, &standard, &rich, &variations); err != nil {
			return nil, fmt.Errorf("scan context: %w", err)
		}
		row := catalog.Row{
			catalog.ColID:               id,
			catalog.ColName:             name,
			catalog.ColCategory:         category,
			catalog.ColDescription:      description,
			catalog.ColValueMin:         strconv.FormatFloat(lo, 'f', -1, 64),
			catalog.ColValueMax:         strconv.FormatFloat(hi, 'f', -1, 64),
			catalog.ColUnit:             unit,
			catalog.ColDataLabel:        label,
			catalog.ColMinimalTemplate:  minimal,
			catalog.ColStandardTemplate: standard,
			catalog.ColRichTemplate:     rich,
		}
		supported := strings.Split(variations, ",")
		for _, v := range catalog.AllVariations() {
			flag := "N"
			for _, s := range supported {
				if s == string(v) {
					flag = "Y"
				}
			}
			row[catalog.VariationColumn(v)] = flag
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *contextRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(contextsTable)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contexts: %w", err)
	}
	return n, nil
}

func joinVariations(vs []catalog.Variation) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
