package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/On-Jun9/ShutterSort/internal/config"
	"github.com/On-Jun9/ShutterSort/internal/copier"
	"github.com/On-Jun9/ShutterSort/internal/hasher"
	"github.com/On-Jun9/ShutterSort/internal/log"
	"github.com/On-Jun9/ShutterSort/internal/metadata"
	"github.com/On-Jun9/ShutterSort/internal/planner"
	"github.com/On-Jun9/ShutterSort/internal/policy"
	"github.com/On-Jun9/ShutterSort/internal/verify"
	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/spf13/afero"
)

// Engine decides where a single file belongs and puts it there.
// It is not safe for concurrent use: directory creation and the collision
// loop assume nobody else writes to the destination meanwhile.
type Engine struct {
	cfg      *config.Config
	fs       afero.Fs
	meta     *metadata.Extractor
	planner  *planner.Planner
	resolver *policy.ConflictResolver
	copier   *copier.Copier
	logger   *log.Logger
}

func NewEngine(fs afero.Fs, cfg *config.Config, logger *log.Logger) *Engine {
	h := hasher.New(fs, cfg.HashAlgorithm)
	return &Engine{
		cfg:      cfg,
		fs:       fs,
		meta:     metadata.New(fs),
		planner:  planner.New(fs, cfg.Dest),
		resolver: policy.NewConflictResolver(fs, h),
		copier:   copier.New(fs, cfg.DryRun, verify.New(fs, h, cfg.VerifyCopies)),
		logger:   logger,
	}
}

// EnableExifTool adds exiftool as a fallback metadata backend.
func (e *Engine) EnableExifTool() error {
	return e.meta.EnableExifTool()
}

func (e *Engine) Close() error {
	return e.meta.Close()
}

// Place processes one file. Skips are reported through the returned
// Placement; an error means an I/O failure the run cannot recover from.
func (e *Engine) Place(entry types.FileEntry) (types.Placement, error) {
	p := types.Placement{Source: entry}

	if e.cfg.CountExtensions {
		p.Outcome = types.OutcomeCounted
		return p, nil
	}

	if e.cfg.Verbose {
		e.describe(entry)
	}

	metaDate := e.meta.Extract(entry)
	nameDate := metadata.DateFromFilename(entry.Stem())
	e.logDates(entry, metaDate, nameDate)

	decision := policy.Reconcile(metaDate, nameDate, e.cfg.PreferMetadata)
	if decision.Skip {
		p.Outcome = types.OutcomeSkipped
		p.Reason = decision.Reason
		return p, nil
	}
	p.Date = decision.Date

	name := entry.Name
	if decision.Rename {
		name = policy.CanonicalName(decision.Date.Time, entry.Name)
	}

	bucket, err := e.planner.Resolve(decision.Date.Time)
	if err != nil {
		return p, err
	}
	if !bucket.Exists {
		if err := e.copier.EnsureDir(bucket.Dir); err != nil {
			return p, err
		}
	}

	slot, err := e.resolver.Resolve(entry.Path, bucket.Dir, name)
	if err != nil {
		return p, err
	}
	p.DestPath = slot.DestPath

	if slot.Duplicate {
		p.Outcome = types.OutcomeAlreadyPresent
		if !e.cfg.Copy && !policy.SameFile(e.fs, entry.Path, slot.DestPath) {
			if err := e.copier.Remove(entry.Path); err != nil {
				return p, err
			}
		}
		return p, nil
	}

	p.Renamed = slot.Counter > 0 || filepath.Base(slot.DestPath) != entry.Name
	if e.cfg.DryRun {
		e.resolver.Reserve(slot.DestPath, entry.Path)
	}

	if e.cfg.Copy {
		if err := e.copier.Copy(entry.Path, slot.DestPath); err != nil {
			return p, err
		}
		p.Outcome = types.OutcomeCopied
		return p, nil
	}

	fellBack, err := e.copier.Move(entry.Path, slot.DestPath)
	if err != nil {
		return p, err
	}
	if fellBack {
		e.logger.Debug().Str("source", entry.Path).Msg("rename failed, moved by copy and delete")
	}
	p.Outcome = types.OutcomeMoved
	return p, nil
}

func (e *Engine) describe(entry types.FileEntry) {
	ev := e.logger.Debug().Str("source", entry.Path)
	if mime := e.meta.MIME(entry.Path); mime != "" {
		ev = ev.Str("mime", mime)
	}
	for _, f := range e.meta.Describe(entry) {
		ev = ev.Str(f.Name, f.Value)
	}
	ev.Msg("metadata")
}

func (e *Engine) logDates(entry types.FileEntry, metaDate, nameDate types.DateResult) {
	ev := e.logger.Debug().Str("source", entry.Path)
	if metaDate.Found() {
		ev = ev.Time("metadata_date", metaDate.Date.Time).Str("metadata_source", metaDate.Date.Source)
	} else {
		ev = ev.Str("metadata_reason", metaDate.Reason)
	}
	if nameDate.Found() {
		ev = ev.Str("filename_date", nameDate.Date.Time.Format("2006-01-02")).Str("filename_source", nameDate.Date.Source)
	} else {
		ev = ev.Str("filename_reason", nameDate.Reason)
	}
	ev.Msg("dates")
}

// placeError names the file a fatal error belongs to.
func placeError(entry types.FileEntry, err error) error {
	return fmt.Errorf("process %s: %w", entry.Path, err)
}
