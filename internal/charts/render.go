package charts

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/eda-cli/internal/analysis"
	"github.com/KaramelBytes/eda-cli/internal/dataset"
	"github.com/KaramelBytes/eda-cli/internal/utils"
)

// RenderOptions controls chart size and estimator resolution.
type RenderOptions struct {
	Width  int
	Height int
	// Bins is the number of histogram bins.
	Bins int
	// KDEPoints is the number of evaluation points of a density curve.
	KDEPoints int
	// GridSize is the side of the 2D density grid.
	GridSize int
	Number   analysis.NumberFormat
	Logger   *slog.Logger
}

// DefaultRenderOptions returns the sizes used when a field is left zero.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Width: 1024, Height: 640, Bins: 10, KDEPoints: 200, GridSize: 40}
}

// Figure is a rendered chart.
type Figure struct {
	ID      string    `json:"id"`
	Type    ChartType `json:"-"`
	Title   string    `json:"title"`
	Columns []string  `json:"columns"`
	Format  string    `json:"format"`
	Data    []byte    `json:"-"`
}

// FileName is "<columns>_<type>_<id prefix>.<format>".
func (f *Figure) FileName() string {
	id := f.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s_%s_%s.%s", utils.Slug(strings.Join(f.Columns, "_"), "chart"), f.Type, id, f.Format)
}

// Save writes the figure under dir and returns its path.
func (f *Figure) Save(dir string) (string, error) {
	p := filepath.Join(dir, f.FileName())
	if err := utils.SafeWriteFile(p, f.Data); err != nil {
		return "", err
	}
	return p, nil
}

// Renderer draws validated chart requests as SVG.
type Renderer struct {
	opt   RenderOptions
	log   *slog.Logger
	newID func() string
}

// NewRenderer fills zero options with defaults.
func NewRenderer(opt RenderOptions) *Renderer {
	def := DefaultRenderOptions()
	if opt.Width <= 0 {
		opt.Width = def.Width
	}
	if opt.Height <= 0 {
		opt.Height = def.Height
	}
	if opt.Bins <= 0 {
		opt.Bins = def.Bins
	}
	if opt.KDEPoints < 2 {
		opt.KDEPoints = def.KDEPoints
	}
	if opt.GridSize < 2 {
		opt.GridSize = def.GridSize
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{opt: opt, log: log, newID: uuid.NewString}
}

// Render validates req against the column kinds it carries and draws it from t.
func (r *Renderer) Render(t *dataset.Table, req Request) (*Figure, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, c := range req.Columns() {
		if !t.Has(c) {
			return nil, &SelectionError{Type: req.Type, Columns: req.Columns(), Err: fmt.Errorf("column %q: %w", c, dataset.ErrUnknownColumn)}
		}
	}
	title := figureTitle(req)
	var (
		data []byte
		err  error
	)
	switch req.Type {
	case Bar:
		data, err = r.bar(t, req, title)
	case Pie:
		data, err = r.pie(t, req, title)
	case Pareto:
		data, err = r.pareto(t, req, title)
	case Histogram:
		data, err = r.histogram(t, req, title)
	case Density:
		data, err = r.density(t, req, title)
	case BoxPlot:
		data, err = r.boxPlot(t, req, title)
	case Contingency:
		data, err = r.contingency(t, req, title)
	case Scatter:
		data, err = r.scatter(t, req, title)
	case Density2D:
		data, err = r.density2D(t, req, title)
	case GroupedBoxPlot:
		data, err = r.groupedBoxPlot(t, req, title)
	case Violin:
		data, err = r.violin(t, req, title)
	default:
		return nil, &InvariantError{Detail: fmt.Sprintf("no renderer for chart type %v", req.Type)}
	}
	if err != nil {
		return nil, fmt.Errorf("render %s of %s: %w", req.Type, strings.Join(req.Columns(), ", "), err)
	}
	fig := &Figure{
		ID:      r.newID(),
		Type:    req.Type,
		Title:   title,
		Columns: req.Columns(),
		Format:  "svg",
		Data:    data,
	}
	r.log.Debug("chart rendered", "type", req.Type.String(), "columns", fig.Columns, "bytes", len(data))
	return fig, nil
}

func figureTitle(req Request) string {
	switch {
	case !req.Paired():
		return fmt.Sprintf("%s of %s", req.Type.Title(), req.X)
	case req.Type == Contingency:
		return fmt.Sprintf("%s: %s by %s", req.Type.Title(), req.Y, req.X)
	default:
		return fmt.Sprintf("%s: %s vs %s", req.Type.Title(), req.Y, req.X)
	}
}

// splitGroup returns the categorical and numeric column of a mixed pair, and whether the
// categories run along the horizontal axis.
func splitGroup(req Request) (cat, num string, vertical bool) {
	if req.XKind == analysis.Categorical {
		return req.X, req.Y, true
	}
	return req.Y, req.X, false
}
