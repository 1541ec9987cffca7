// Package pipeline reads the output of a finished DIF3D case and attributes
// its mesh fields to the domain objects of a host model.
//
// The pipeline never touches host objects. Apply returns a mapping from
// object ID to computed values; each field is computed for every object
// before it is merged, so a field that fails is missing for all objects
// rather than set for some of them.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terrapower/armicontrib-dif3d/internal/aggregate"
	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/config"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/dif3d"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/geodst"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/labels"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/pkedit"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/pwdint"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/rtflux"
	"github.com/terrapower/armicontrib-dif3d/internal/logging"
	"github.com/terrapower/armicontrib-dif3d/internal/mesh"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
	"github.com/terrapower/armicontrib-dif3d/internal/region"
	"github.com/terrapower/armicontrib-dif3d/internal/stdout"
)

// Reader holds a checked DIF3D run, ready to be applied.
type Reader struct {
	cfg      *config.Config
	codec    *binfile.Codec
	logger   *zap.Logger
	solution dif3d.SolutionType

	run         *dif3d.File
	geometry    *geodst.File
	keff        float64
	convergence dif3d.Convergence
	warnings    []aggregate.Warning
}

// NewReader checks the run directory of cfg for a DIF3D file, reads it and
// logs its summary. A run that did not converge is reported as a warning;
// its results are still usable. A nil codec reads the local filesystem with
// the layout of cfg.
func NewReader(cfg *config.Config, codec *binfile.Codec, logger *zap.Logger) (*Reader, error) {
	logger = logging.OrNop(logger)
	solution, err := cfg.SolutionType()
	if err != nil {
		return nil, err
	}
	if codec == nil {
		layout, err := cfg.Layout()
		if err != nil {
			return nil, err
		}
		codec = binfile.NewCodec(nil, binfile.WithLayout(layout), binfile.WithLogger(logger))
	}

	r := &Reader{cfg: cfg, codec: codec, logger: logger, solution: solution}
	path := cfg.Path(cfg.Files.DIF3D)
	if !codec.DiskManager().Exists(path) {
		return nil, fmt.Errorf("no DIF3D output found, check the DIF3D printed output for errors: %w", record.NotFound(path))
	}
	r.run, err = dif3d.Read(codec, path)
	if err != nil {
		return nil, err
	}
	if r.keff, err = r.run.Keff(); err != nil {
		return nil, err
	}
	if r.convergence, err = r.run.Convergence(); err != nil {
		return nil, err
	}

	summary, err := r.run.Summary()
	if err != nil {
		return nil, err
	}
	logger.Info("Found DIF3D output", zap.String("path", path), zap.Strings("summary", summary))

	if r.convergence != dif3d.Converged {
		r.warn(aggregate.Warning{
			Source:  dif3d.Name,
			Message: fmt.Sprintf("DIF3D run did not converge, convergence state is %s", r.convergence),
		})
	}
	return r, nil
}

// Keff returns the multiplication factor of the run.
func (r *Reader) Keff() float64 { return r.keff }

// Convergence returns the convergence state of the run.
func (r *Reader) Convergence() dif3d.Convergence { return r.convergence }

// Run returns the decoded DIF3D file.
func (r *Reader) Run() *dif3d.File { return r.run }

func (r *Reader) warn(w aggregate.Warning) {
	r.logger.Warn(w.Message, zap.String("source", w.Source))
	r.warnings = append(r.warnings, w)
}

func (r *Reader) checkKeff(source string, local float64) {
	if w, ok := aggregate.CheckKeff(source, r.keff, local, r.cfg.KeffTolerance); ok {
		r.warn(w)
	}
}

// located is an object with its mesh cells.
type located struct {
	Object
	cells       []mesh.Index
	regionIndex int
}

// Apply reads the geometry and the result files of the run and computes
// every field for every object. On a fatal error the returned results hold
// the fields completed before it, alongside the error.
func (r *Reader) Apply(objects []Object) (*Results, error) {
	res := &Results{
		PassID:      uuid.NewString(),
		RunDir:      r.cfg.RunDir,
		Keff:        r.keff,
		Convergence: r.convergence.String(),
		Solution:    r.solution.String(),
		Objects:     make(map[string]*ObjectResult, len(objects)),
	}
	// Warnings raised while applying belong to this pass only.
	n := len(r.warnings)
	defer func() {
		res.Warnings = append([]aggregate.Warning(nil), r.warnings...)
		r.warnings = r.warnings[:n]
	}()

	r.logInventory()

	objs, err := r.locate(objects)
	if err != nil {
		return res, err
	}
	for _, o := range objs {
		res.Objects[o.ID] = &ObjectResult{Label: o.Label, RegionIndex: o.regionIndex, Cells: len(o.cells)}
	}

	if r.solution.HasReal() {
		if err := r.readPower(res, objs); err != nil {
			return res, fmt.Errorf("power: %w", err)
		}
	} else {
		r.logger.Info("Skipping power update due to purely adjoint case")
		res.Skipped = append(res.Skipped, FieldPowerDensity, FieldPeakPowerDensity, FieldPower)
	}

	if err := r.readFluxes(res, objs); err != nil {
		return res, fmt.Errorf("flux: %w", err)
	}

	if r.solution.HasReal() {
		if err := r.readPeakFluxes(res, objs); err != nil {
			return res, fmt.Errorf("peak flux: %w", err)
		}
	} else {
		r.logger.Info("Skipping peak flux update due to purely adjoint case")
		res.Skipped = append(res.Skipped, FieldPeakFlux)
	}
	return res, nil
}

func (r *Reader) logInventory() {
	files, err := r.codec.DiskManager().List(r.cfg.RunDir, "")
	if err != nil {
		r.logger.Debug("Could not list run directory", zap.String("dir", r.cfg.RunDir), zap.Error(err))
		return
	}
	r.logger.Debug("Run directory", zap.String("dir", r.cfg.RunDir), zap.Strings("files", files))
}

// locate reads GEODST and LABELS and resolves every object's region label.
func (r *Reader) locate(objects []Object) ([]located, error) {
	geo, err := geodst.Read(r.codec, r.cfg.Path(r.cfg.Files.GEODST))
	if err != nil {
		return nil, err
	}
	lab, err := labels.Read(r.codec, r.cfg.Path(r.cfg.Files.LABELS))
	if err != nil {
		return nil, err
	}
	regions, err := geo.Regions()
	if err != nil {
		return nil, err
	}
	resolver, err := region.NewResolver(lab.Regions(), regions)
	if err != nil {
		return nil, err
	}
	r.geometry = geo

	out := make([]located, 0, len(objects))
	seen := make(map[string]bool, len(objects))
	for _, o := range objects {
		if seen[o.ID] {
			return nil, fmt.Errorf("object ID %q is listed twice", o.ID)
		}
		seen[o.ID] = true
		cells, idx, err := resolver.Resolve(o.Label)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", o.ID, err)
		}
		out = append(out, located{Object: o, cells: cells, regionIndex: idx})
	}
	return out, nil
}

func (r *Reader) readPower(res *Results, objs []located) error {
	r.logger.Debug("Reading power distributions", zap.String("file", r.cfg.Files.PWDINT))
	pw, err := pwdint.Read(r.codec, r.cfg.Path(r.cfg.Files.PWDINT))
	if err != nil {
		return err
	}
	r.logger.Debug("Reading peak power distributions", zap.String("file", r.cfg.Files.PKEDIT))
	pk, err := pkedit.Read(r.codec, r.cfg.Path(r.cfg.Files.PKEDIT))
	if err != nil {
		return err
	}
	if keff, err := pw.Keff(); err == nil {
		r.checkKeff(pwdint.Name, keff)
	}
	if keff, err := pk.Keff(); err == nil {
		r.checkKeff(pkedit.Name, keff)
	}

	density, err := pw.Density()
	if err != nil {
		return err
	}
	peak, err := pk.Peak()
	if err != nil {
		return err
	}

	pdens, ppdens, power := newStaging(FieldPowerDensity), newStaging(FieldPeakPowerDensity), newStaging(FieldPower)
	for _, o := range objs {
		volume, err := r.geometry.RegionVolume(o.regionIndex)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.ID, err)
		}
		mean, err := aggregate.Mean(density, o.cells)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.ID, err)
		}
		top, err := aggregate.Max(peak, o.cells)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.ID, err)
		}
		pdens.scalars[o.ID] = mean
		ppdens.scalars[o.ID] = top
		// Cells of one region are taken as equal-volume.
		power.scalars[o.ID] = mean * volume
	}
	res.merge(pdens, ppdens, power)
	return nil
}

func (r *Reader) readFluxes(res *Results, objs []located) error {
	if r.solution.HasReal() {
		r.logger.Debug("Reading real flux", zap.String("file", r.cfg.Files.RTFLUX))
		f, err := rtflux.ReadReal(r.codec, r.cfg.Path(r.cfg.Files.RTFLUX))
		if err != nil {
			return err
		}
		if err := r.applyFlux(res, objs, f, rtflux.RTFLUX, FieldMultigroupFlux, FieldFlux); err != nil {
			return err
		}
	}
	if r.solution.HasAdjoint() {
		r.logger.Debug("Reading adjoint flux", zap.String("file", r.cfg.Files.ATFLUX))
		f, err := rtflux.ReadAdjoint(r.codec, r.cfg.Path(r.cfg.Files.ATFLUX))
		if err != nil {
			return err
		}
		if err := r.applyFlux(res, objs, f, rtflux.ATFLUX, FieldAdjointMgFlux, FieldAdjointFlux); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) applyFlux(res *Results, objs []located, f *rtflux.File, source, mgField, totalField string) error {
	keff, err := f.Keff()
	if err != nil {
		return err
	}
	r.checkKeff(source, keff)

	flux, err := f.Flux()
	if err != nil {
		return err
	}
	mg, total := newStaging(mgField), newStaging(totalField)
	for _, o := range objs {
		groups, err := aggregate.GroupMeans(flux, o.cells)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.ID, err)
		}
		mg.vectors[o.ID] = groups
		total.scalars[o.ID] = aggregate.Total(groups)
	}
	res.merge(mg, total)
	return nil
}

func (r *Reader) readPeakFluxes(res *Results, objs []located) error {
	peaks, err := stdout.Read(r.codec.DiskManager(), r.cfg.OutputPath())
	if err != nil {
		return err
	}
	stage := newStaging(FieldPeakFlux)
	for _, o := range objs {
		v, ok := peaks.Peak(strings.TrimRight(o.Label, " "))
		if !ok {
			return fmt.Errorf("object %s: %w", o.ID, &region.LookupError{Label: o.Label})
		}
		stage.scalars[o.ID] = v
	}
	res.merge(stage)
	return nil
}
