// Package clean provides the rule-based cleaning stage. It removes rows
// that cannot be used downstream - missing or non-numeric core fields,
// implausible model years, exact duplicates - and reports per-rule drop
// counts. The pipeline depends only on the core.Cleaner contract, so this
// implementation can be swapped for an external filter collaborator
// without touching the orchestration.
package clean

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/tuanvm/carprep/pkg/connector/core"
	"github.com/tuanvm/carprep/pkg/models"
)

// Rule names reported in the cleaning report.
const (
	RuleMissingRequired = "missing_required"
	RuleNonNumeric      = "non_numeric"
	RuleYearOutOfRange  = "year_out_of_range"
	RuleDuplicate       = "duplicate"
)

// FilterConfig drives the rule cleaner. The pipeline passes a fixed
// default; nothing reads it after construction.
type FilterConfig struct {
	// RequiredColumns must be present and numeric on every surviving row
	RequiredColumns []string `yaml:"required_columns" json:"required_columns"`
	// MinYear and MaxYear bound the plausible model-year window
	MinYear int `yaml:"min_year" json:"min_year"`
	MaxYear int `yaml:"max_year" json:"max_year"`
	// DropDuplicates removes rows whose payload exactly repeats an
	// earlier row
	DropDuplicates bool `yaml:"drop_duplicates" json:"drop_duplicates"`
}

// DefaultFilterConfig returns the standard listing filter: price, year and
// odometer must be numeric, the model year must fall in a sane window, and
// exact repeats are collapsed.
func DefaultFilterConfig() *FilterConfig {
	return &FilterConfig{
		RequiredColumns: []string{"price", "year", "odometer_km"},
		MinYear:         1950,
		MaxYear:         time.Now().Year() + 1,
		DropDuplicates:  true,
	}
}

// RuleCleaner implements core.Cleaner over a FilterConfig.
type RuleCleaner struct {
	cfg    *FilterConfig
	logger *zap.Logger
}

// NewRuleCleaner creates a rule cleaner. A nil config selects the default.
func NewRuleCleaner(cfg *FilterConfig, logger *zap.Logger) *RuleCleaner {
	if cfg == nil {
		cfg = DefaultFilterConfig()
	}
	return &RuleCleaner{
		cfg:    cfg,
		logger: logger.With(zap.String("cleaner", "rules")),
	}
}

// Name identifies the cleaner for logging.
func (c *RuleCleaner) Name() string {
	return "rules"
}

// Clean applies the configured rules in order and returns the surviving
// rows as a new table plus a per-rule report. The input table is not
// modified.
func (c *RuleCleaner) Clean(ctx context.Context, table *models.Table) (*models.Table, *core.CleanReport, error) {
	report := &core.CleanReport{
		RowsIn:  table.Len(),
		Dropped: make(map[string]int),
	}

	out := models.NewTable()
	out.SetColumns(table.Columns())

	seen := make(map[string]struct{}, table.Len())

	for _, row := range table.Rows() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if rule := c.applyRules(row, seen); rule != "" {
			report.Dropped[rule]++
			continue
		}
		out.Append(row)
	}

	report.RowsOut = out.Len()

	c.logger.Debug("cleaning complete",
		zap.Int("rows_in", report.RowsIn),
		zap.Int("rows_out", report.RowsOut))

	return out, report, nil
}

// applyRules returns the name of the first rule a row violates, or ""
// when the row survives. Duplicate tracking mutates seen.
func (c *RuleCleaner) applyRules(row *models.Record, seen map[string]struct{}) string {
	for _, col := range c.cfg.RequiredColumns {
		v, ok := row.Get(col)
		if !ok {
			return RuleMissingRequired
		}
		if _, numeric := models.ToFloat(v); !numeric {
			return RuleNonNumeric
		}
	}

	if year, ok := models.ToFloat(row.Data["year"]); ok {
		if int(year) < c.cfg.MinYear || int(year) > c.cfg.MaxYear {
			return RuleYearOutOfRange
		}
	}

	if c.cfg.DropDuplicates {
		if fp, ok := fingerprint(row); ok {
			if _, dup := seen[fp]; dup {
				return RuleDuplicate
			}
			seen[fp] = struct{}{}
		}
	}

	return ""
}

// fingerprint serializes the row payload for duplicate detection. JSON
// map keys are emitted sorted, so equal payloads fingerprint equally.
// Rows that do not marshal (a NaN float, for example) report ok=false
// and are exempt from duplicate detection rather than sharing one empty
// fingerprint.
func fingerprint(row *models.Record) (string, bool) {
	data, err := json.Marshal(row.Data)
	if err != nil {
		return "", false
	}
	return string(data), true
}
