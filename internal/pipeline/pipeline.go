// Package pipeline connects the log source, parser, filters and renderer.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/blackwell-systems/paclog/internal/filter"
	"github.com/blackwell-systems/paclog/internal/logfile"
	"github.com/blackwell-systems/paclog/internal/paclog"
)

// Options selects which events are rendered.
type Options struct {
	Patterns filter.Patterns
	Dates    filter.DateRange
}

// Renderer writes a single event.
type Renderer interface {
	Render(ev *paclog.Event) error
}

// Stats counts what happened to each line of the log.
type Stats struct {
	Lines      int // lines read
	Malformed  int // not a change record, or an invalid one
	Filtered   int // rejected by the name patterns
	OutOfRange int // outside the date range
	Rendered   int
}

// Pipeline renders the events of a log that pass the configured filters.
type Pipeline struct {
	parser   *paclog.Parser
	opts     Options
	renderer Renderer
	log      *zap.SugaredLogger
}

// New creates a pipeline. A nil logger discards diagnostics.
func New(parser *paclog.Parser, opts Options, renderer Renderer, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		parser:   parser,
		opts:     opts,
		renderer: renderer,
		log:      log,
	}
}

// Run reads r line by line and renders every surviving event in the order
// it appears. Rejected lines are skipped; only read and write failures stop
// the run.
func (p *Pipeline) Run(r io.Reader) (Stats, error) {
	var stats Stats

	err := logfile.EachLine(r, func(line string) error {
		stats.Lines++

		ev, err := p.parser.Parse(line, p.opts.Patterns)
		if err != nil {
			if errors.Is(err, paclog.ErrNameMismatch) {
				stats.Filtered++
			} else {
				stats.Malformed++
				p.log.Debugw("skipping line", "line", stats.Lines, "reason", err)
			}
			return nil
		}

		if !p.opts.Dates.InRange(ev.Date()) {
			stats.OutOfRange++
			return nil
		}

		if err := p.renderer.Render(ev); err != nil {
			return err
		}
		stats.Rendered++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
	}

	p.log.Debugw("done",
		"lines", stats.Lines,
		"rendered", stats.Rendered,
		"malformed", stats.Malformed,
		"filtered", stats.Filtered,
		"out_of_range", stats.OutOfRange,
	)
	return stats, nil
}
