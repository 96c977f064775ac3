package service

import (
	"context"
	"slices"

	"datacleaner/pkg/model"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of applying rules to a batch of records.
type Outcome struct {
	Records []model.Record
	Columns []model.ColumnReport
	Skipped []string
	// Overwritten lists derived fields that were already input columns.
	Overwritten []string
	// Applied holds the rules whose column was present, in rule order.
	Applied []Rule
}

// SplitRules partitions rules by whether their raw column is among columns.
func SplitRules(rules []Rule, columns []string) (applied []Rule, skipped []string) {
	for _, rule := range rules {
		if slices.Contains(columns, rule.Column) {
			applied = append(applied, rule)
		} else {
			skipped = append(skipped, rule.Column)
		}
	}
	return applied, skipped
}

// CleanRecord returns a copy of rec with the derived fields of rules set and
// the number of valid values per rule added to valid.
func CleanRecord(rec model.Record, rules []Rule, opts Options, valid []int) model.Record {
	out := rec.Clone()
	for i, rule := range rules {
		v, ok := rule.Normalize(rec[rule.Column], opts)
		out[rule.Field] = v
		if ok && valid != nil {
			valid[i]++
		}
	}
	return out
}

// Clean applies the rules whose column appears in columns to every record.
// Records are split into chunks of opts.ChunkSize handled by at most
// opts.Workers goroutines; the output keeps the input order.
func Clean(ctx context.Context, records []model.Record, columns []string, rules []Rule, opts Options) (*Outcome, error) {
	applied, skipped := SplitRules(rules, columns)

	chunk := max(opts.ChunkSize, 1)
	chunks := (len(records) + chunk - 1) / chunk

	out := make([]model.Record, len(records))
	chunkValid := make([][]int, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	for c := 0; c < chunks; c++ {
		start := c * chunk
		end := min(start+chunk, len(records))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			valid := make([]int, len(applied))
			for i := start; i < end; i++ {
				out[i] = CleanRecord(records[i], applied, opts, valid)
			}
			chunkValid[c] = valid
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := make([]int, len(applied))
	for _, valid := range chunkValid {
		for i, n := range valid {
			totals[i] += n
		}
	}

	return &Outcome{
		Records: out,
		Columns: reports(applied, totals, len(records)),
		Skipped:     skipped,
		Overwritten: OverwrittenFields(applied, columns),
		Applied:     applied,
	}, nil
}

// OverwrittenFields returns the derived fields of applied that are already
// among columns. Their input values are replaced by the cleaned ones.
func OverwrittenFields(applied []Rule, columns []string) []string {
	var fields []string
	for _, rule := range applied {
		if slices.Contains(columns, rule.Field) {
			fields = append(fields, rule.Field)
		}
	}
	return fields
}

// ColumnsOf lists the keys present in any of records, sorted.
func ColumnsOf(records []model.Record) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	slices.Sort(columns)
	return columns
}
