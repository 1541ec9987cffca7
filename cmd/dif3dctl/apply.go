package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/terrapower/armicontrib-dif3d/internal/config"
	"github.com/terrapower/armicontrib-dif3d/internal/pipeline"
)

// objectsFile is the YAML list of host objects to attribute results to.
type objectsFile struct {
	Objects []pipeline.Object `yaml:"objects"`
}

func loadObjects(path string) ([]pipeline.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read objects %s: %w", path, err)
	}
	var f objectsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse objects %s: %w", path, err)
	}
	if len(f.Objects) == 0 {
		return nil, fmt.Errorf("objects %s lists no objects", path)
	}
	return f.Objects, nil
}

func (a *app) applyCmd() *cobra.Command {
	var (
		configPath  string
		objectsPath string
		outPath     string
		jobs        int
	)
	cmd := &cobra.Command{
		Use:   "apply [run-dir...]",
		Short: "Attribute the results of one or more finished runs to host objects",
		Long: `Read the interface files and printed output of each run directory and
compute power, flux and peak values per object. Run directories are processed
concurrently; without arguments the run_dir of the configuration is used.
Results are written as one YAML document per run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			objects, err := loadObjects(objectsPath)
			if err != nil {
				return err
			}
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{cfg.RunDir}
			}

			results, err := a.applyAll(cfg, dirs, objects, jobs)

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, ferr := os.Create(outPath)
				if ferr != nil {
					return errors.Join(err, ferr)
				}
				defer f.Close()
				out = f
			}
			if werr := writeResults(out, results); werr != nil {
				return errors.Join(err, werr)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "run configuration (TOML)")
	cmd.Flags().StringVar(&objectsPath, "objects", "", "objects to apply results to (YAML)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write results here instead of stdout")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "run directories processed at once")
	_ = cmd.MarkFlagRequired("objects")
	return cmd
}

// applyAll runs one pass per directory. Results keep the order of dirs; a
// run that failed early has no entry. The error joins every failed run's
// error, in the order of dirs.
func (a *app) applyAll(cfg *config.Config, dirs []string, objects []pipeline.Object, jobs int) ([]*pipeline.Results, error) {
	results := make([]*pipeline.Results, len(dirs))
	errs := make([]error, len(dirs))
	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, dir := range dirs {
		g.Go(func() error {
			logger := a.logger.With(zap.String("run_dir", dir))
			r, err := pipeline.NewReader(cfg.WithRunDir(dir), nil, logger)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", dir, err)
				return nil
			}
			res, err := r.Apply(objects)
			results[i] = res
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", dir, err)
				return nil
			}
			logger.Info("Applied run", zap.String("pass_id", res.PassID), zap.Strings("fields", res.Fields))
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}

func writeResults(w io.Writer, results []*pipeline.Results) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return enc.Close()
}
