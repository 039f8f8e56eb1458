package files

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"golang.org/x/sync/errgroup"

	"revcompare/internal/dataprocessing"
	"revcompare/pkg/contracts/domain"
)

// DefaultWorkers is used when a Loader is built with a non-positive limit.
const DefaultWorkers = 4

// ReasonDuplicateName is the rejection reason for a second input with an
// already loaded name.
const ReasonDuplicateName = "duplicate file name; the first file with this name was loaded"

// Input is one named report waiting to be parsed.
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FromPaths turns discovered files into inputs.
func FromPaths(files []FileInfo) []Input {
	inputs := make([]Input, len(files))
	for i, f := range files {
		p := f.Path
		inputs[i] = Input{
			Name: f.Name,
			Open: func() (io.ReadCloser, error) { return os.Open(p) },
		}
	}
	return inputs
}

// FromFS turns every supported file of dir in fsys into inputs, sorted by name.
func FromFS(fsys fs.FS, dir string) ([]Input, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var inputs []Input
	for _, entry := range entries {
		if entry.IsDir() || !dataprocessing.IsSupported(entry.Name()) {
			continue
		}
		p := path.Join(dir, entry.Name())
		inputs = append(inputs, Input{
			Name: entry.Name(),
			Open: func() (io.ReadCloser, error) { return fsys.Open(p) },
		})
	}
	return inputs, nil
}

// Loader parses a batch of report inputs.
type Loader struct {
	workers int
	logger  *slog.Logger
}

// NewLoader creates a loader running at most workers parsers at once.
func NewLoader(workers int, logger *slog.Logger) *Loader {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		workers: workers,
		logger:  logger.With(slog.String("component", "loader")),
	}
}

// Load parses every input. Sources come back in input order. Inputs that
// cannot be opened or parsed become rejections and do not stop the batch, as
// do later inputs repeating an accepted name. The error is only set when ctx
// is cancelled.
func (l *Loader) Load(ctx context.Context, inputs []Input) ([]domain.Source, []domain.Rejection, error) {
	type result struct {
		table domain.Table
		err   error
	}
	results := make([]result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := parseInput(in)
			results[i] = result{table: table, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sources := make([]domain.Source, 0, len(inputs))
	loaded := make(map[string]bool, len(inputs))
	var rejected []domain.Rejection
	for i, r := range results {
		name := inputs[i].Name
		if r.err == nil && loaded[name] {
			l.logger.WarnContext(ctx, "Skipping report with duplicate name",
				slog.String("source", name))
			rejected = append(rejected, domain.Rejection{SourceName: name, Reason: ReasonDuplicateName})
			continue
		}
		if r.err != nil {
			l.logger.WarnContext(ctx, "Skipping unreadable report",
				slog.String("source", name),
				slog.String("error", r.err.Error()))
			rejected = append(rejected, domain.Rejection{SourceName: name, Reason: r.err.Error()})
			continue
		}
		loaded[name] = true
		sources = append(sources, domain.Source{Name: name, Table: r.table})
	}

	l.logger.InfoContext(ctx, "Report batch parsed",
		slog.Int("inputs", len(inputs)),
		slog.Int("parsed", len(sources)),
		slog.Int("failed", len(rejected)))

	return sources, rejected, nil
}

func parseInput(in Input) (domain.Table, error) {
	rc, err := in.Open()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open: %w", err)
	}
	defer rc.Close()

	return dataprocessing.Parse(in.Name, rc)
}
