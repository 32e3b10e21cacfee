package analysis

import (
	"log/slog"

	"github.com/KaramelBytes/eda-cli/internal/dataset"
)

// Options controls classification and statistics.
type Options struct {
	Number NumberFormat
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Classification partitions a table's columns into three disjoint kinds. Each list keeps
// the table's column order.
type Classification struct {
	Categorical []string `json:"categorical"`
	Continuous  []string `json:"continuous"`
	Discrete    []string `json:"discrete"`

	kinds map[string]Kind
}

// KindOf returns the kind assigned to col.
func (c Classification) KindOf(col string) (Kind, bool) {
	k, ok := c.kinds[col]
	return k, ok
}

// Of returns the columns of the given kind.
func (c Classification) Of(k Kind) []string {
	switch k {
	case Categorical:
		return c.Categorical
	case Continuous:
		return c.Continuous
	case Discrete:
		return c.Discrete
	}
	return nil
}

// Numeric lists continuous columns followed by discrete ones.
func (c Classification) Numeric() []string {
	out := make([]string, 0, len(c.Continuous)+len(c.Discrete))
	out = append(out, c.Continuous...)
	return append(out, c.Discrete...)
}

// Len is the number of classified columns.
func (c Classification) Len() int {
	return len(c.Categorical) + len(c.Continuous) + len(c.Discrete)
}

func (c *Classification) add(col string, k Kind) {
	if c.kinds == nil {
		c.kinds = make(map[string]Kind)
	}
	c.kinds[col] = k
	switch k {
	case Categorical:
		c.Categorical = append(c.Categorical, col)
	case Continuous:
		c.Continuous = append(c.Continuous, col)
	case Discrete:
		c.Discrete = append(c.Discrete, col)
	}
}

// Classify assigns exactly one kind to every column of t. It reads detached column copies
// and never modifies the table, so repeated calls return identical results.
func Classify(t *dataset.Table, opt Options) Classification {
	var c Classification
	log := opt.logger()
	for _, name := range t.Columns() {
		k := classifyColumn(t, name, opt.Number, log)
		c.add(name, k)
	}
	return c
}

func classifyColumn(t *dataset.Table, name string, nf NumberFormat, log *slog.Logger) Kind {
	col, err := t.Column(name)
	if err != nil {
		log.Debug("column not coercible, treating as categorical", "column", name, "err", err)
		return Categorical
	}
	num := coerce(col, nf)
	present := num.present()

	distinct := make(map[float64]struct{}, len(present))
	for _, v := range present {
		distinct[v] = struct{}{}
		if len(distinct) > 2 {
			break
		}
	}
	if len(distinct) <= 2 {
		return Categorical
	}
	if allIntegers(present) {
		return Discrete
	}
	return Continuous
}
