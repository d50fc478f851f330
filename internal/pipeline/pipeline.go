package pipeline

import (
	"time"

	"github.com/On-Jun9/ShutterSort/internal/config"
	"github.com/On-Jun9/ShutterSort/internal/log"
	"github.com/On-Jun9/ShutterSort/internal/scanner"
	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/afero"
)

// Pipeline walks the source tree and feeds every file to the Engine.
type Pipeline struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	engine  *Engine
	logger  *log.Logger
}

// New builds a pipeline over the OS filesystem. cfg must already be validated.
func New(cfg *config.Config) (*Pipeline, error) {
	logger, err := log.New(cfg.LogFile, cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	p := newPipeline(afero.NewOsFs(), cfg, logger)
	if cfg.UseExifTool {
		if err := p.engine.EnableExifTool(); err != nil {
			logger.Warn().Err(err).Msg("exiftool unavailable, continuing without it")
		}
	}
	return p, nil
}

func newPipeline(fs afero.Fs, cfg *config.Config, logger *log.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		scanner: scanner.New(fs, cfg.Recursive, cfg.MaxDepth),
		engine:  NewEngine(fs, cfg, logger),
		logger:  logger,
	}
}

// Run processes every file under the source root. The first fatal error
// stops the run and is returned; the summary is not printed in that case.
func (p *Pipeline) Run() (*types.RunSummary, error) {
	summary := &types.RunSummary{
		DryRun:    p.cfg.DryRun,
		StartTime: time.Now(),
	}
	if p.cfg.CountExtensions {
		summary.Extensions = types.ExtensionTally{}
	}

	p.logger.Info().
		Str("source", p.cfg.Source).
		Str("dest", p.cfg.Dest).
		Bool("copy", p.cfg.Copy).
		Bool("dry_run", p.cfg.DryRun).
		Msg("starting")

	err := p.scanner.Walk(p.cfg.Source, func(entry types.FileEntry) error {
		placement, err := p.engine.Place(entry)
		if err != nil {
			p.logger.Error().Err(err).Str("source", entry.Path).Msg("fatal error")
			return placeError(entry, err)
		}

		summary.Stats.Record(placement)
		if placement.Outcome == types.OutcomeCounted {
			summary.Extensions.Add(entry.Extension)
		}
		p.logger.LogPlacement(placement)
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime)

	p.logger.Summary(*summary)
	return summary, nil
}

func (p *Pipeline) Close() error {
	engineErr := p.engine.Close()
	if err := p.logger.Close(); err != nil {
		return err
	}
	return engineErr
}
