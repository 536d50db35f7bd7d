package main

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/internal/config"
	"github.com/cwbudde/algo-spatial/internal/ncio"
	"github.com/cwbudde/algo-spatial/spatial/grid"
	"github.com/cwbudde/algo-spatial/spatial/nbhood"
	"github.com/cwbudde/algo-spatial/spatial/recursive"
	"github.com/cwbudde/algo-spatial/spatial/smooth"
	"github.com/cwbudde/algo-spatial/stats/field"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds flag values and the logger for one command invocation.
type app struct {
	logger *zap.Logger

	verbose    bool
	configPath string
	variable   string

	radius               float64
	applyRecursiveFilter bool
	alphaX               float64
	alphaY               float64
	iterations           int
	reMask               bool
	shape                string
	sum                  bool
	weighted             bool
	maskStrategy         string
	edgeWidth            int
	workers              int
}

func newRootCmd(a *app) *cobra.Command {
	defaults := smooth.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "nbhood [flags] INPUT OUTPUT",
		Short: "Neighbourhood processing and recursive filtering of gridded fields",
		Long: `nbhood replaces every cell of a 2-D field by the mean of the valid cells
within a square (or circular) neighbourhood of the given radius. With
--apply-recursive-filter the result is further smoothed by a first-order
recursive filter run forward and backward along x and then y.

Flags given on the command line override values from --config.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: expected INPUT and OUTPUT, got %d argument(s)", smooth.ErrConfiguration, len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}

			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			return a.run(cfg, args[0], args[1])
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", smooth.ErrConfiguration, err)
	})

	flags := cmd.Flags()
	flags.Float64Var(&a.radius, "radius", 0, "neighbourhood radius in metres (required)")
	flags.BoolVar(&a.applyRecursiveFilter, "apply-recursive-filter", false, "smooth the neighbourhood output with the recursive filter")
	flags.Float64Var(&a.alphaX, "alpha_x", defaults.AlphaX, "recursive filter coefficient along x, in (0, 1)")
	flags.Float64Var(&a.alphaY, "alpha_y", defaults.AlphaY, "recursive filter coefficient along y, in (0, 1)")
	flags.IntVar(&a.iterations, "iterations", defaults.Iterations, "recursive filter iterations (>= 1)")
	flags.BoolVar(&a.reMask, "re_mask", false, "set originally invalid cells back to missing")
	flags.StringVar(&a.shape, "shape", defaults.Shape.String(), "neighbourhood shape: square or circular")
	flags.BoolVar(&a.sum, "sum", false, "output the neighbourhood sum instead of the mean")
	flags.BoolVar(&a.weighted, "weighted", false, "taper the circular kernel towards its rim")
	flags.StringVar(&a.maskStrategy, "mask-strategy", defaults.MaskStrategy.String(), "invalid cells in the recursive filter: fill, hold or normalised")
	flags.IntVar(&a.edgeWidth, "edge-width", 0, "cells of edge padding for the recursive filter")
	flags.IntVar(&a.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	flags.StringVar(&a.variable, "variable", "", "variable to read (default: the only 2-D variable)")
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// config merges defaults, the config file and explicitly set flags.
func (a *app) config(cmd *cobra.Command) (smooth.Config, error) {
	cfg := smooth.DefaultConfig()
	radiusSet := false

	if a.configPath != "" {
		f, err := config.Load(a.configPath)
		if err != nil {
			return cfg, err
		}
		if err := f.Apply(&cfg); err != nil {
			return cfg, err
		}
		radiusSet = f.Radius != nil
		if f.Variable != nil && !cmd.Flags().Changed("variable") {
			a.variable = *f.Variable
		}
	}

	flags := cmd.Flags()
	if flags.Changed("radius") {
		cfg.Radius = a.radius
		radiusSet = true
	}
	if !radiusSet {
		return cfg, fmt.Errorf("%w: --radius is required", smooth.ErrConfiguration)
	}

	if flags.Changed("apply-recursive-filter") {
		cfg.ApplyRecursiveFilter = a.applyRecursiveFilter
	}
	if flags.Changed("alpha_x") {
		cfg.AlphaX = a.alphaX
	}
	if flags.Changed("alpha_y") {
		cfg.AlphaY = a.alphaY
	}
	if flags.Changed("iterations") {
		cfg.Iterations = a.iterations
	}
	if flags.Changed("re_mask") {
		cfg.ReMask = a.reMask
	}
	if flags.Changed("weighted") {
		cfg.Weighted = a.weighted
	}
	if flags.Changed("edge-width") {
		cfg.EdgeWidth = a.edgeWidth
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("sum") {
		cfg.Output = nbhood.OutputFraction
		if a.sum {
			cfg.Output = nbhood.OutputSum
		}
	}
	if flags.Changed("shape") {
		s, err := nbhood.ParseShape(a.shape)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", smooth.ErrConfiguration, err)
		}
		cfg.Shape = s
	}
	if flags.Changed("mask-strategy") {
		s, err := recursive.ParseMaskStrategy(a.maskStrategy)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", smooth.ErrConfiguration, err)
		}
		cfg.MaskStrategy = s
	}

	return cfg, cfg.Validate()
}

func (a *app) run(cfg smooth.Config, input, output string) error {
	logger := a.logger.With(zap.String("input", input), zap.String("output", output))
	logger.Info("configuration",
		zap.Float64("radius", cfg.Radius),
		zap.Stringer("shape", cfg.Shape),
		zap.Bool("recursive_filter", cfg.ApplyRecursiveFilter),
		zap.Float64("alpha_x", cfg.AlphaX),
		zap.Float64("alpha_y", cfg.AlphaY),
		zap.Int("iterations", cfg.Iterations),
		zap.Stringer("mask_strategy", cfg.MaskStrategy),
		zap.Bool("re_mask", cfg.ReMask),
	)

	p, err := smooth.New(cfg, smooth.WithObserver(func(s smooth.Stage, g *grid.Grid) {
		if ce := logger.Check(zapcore.DebugLevel, "stage"); ce != nil {
			ce.Write(append([]zap.Field{zap.Stringer("stage", s)}, statsFields(field.Calculate(g))...)...)
		}
	}))
	if err != nil {
		return err
	}

	in, err := ncio.ReadFile(input, a.variable)
	if err != nil {
		return err
	}
	logger.Info("read field",
		append([]zap.Field{
			zap.String("variable", in.Name),
			zap.Int("rows", in.Grid.Rows),
			zap.Int("cols", in.Grid.Cols),
			zap.Float64("dx", in.Grid.DX),
			zap.Float64("dy", in.Grid.DY),
		}, statsFields(field.Calculate(in.Grid))...)...,
	)

	out, err := p.Process(in.Grid, in.Mask)
	if err != nil {
		return err
	}

	err = ncio.WriteFile(output, &ncio.Field{
		Name:      in.Name,
		Units:     in.Units,
		FillValue: in.FillValue,
		Grid:      out,
	})
	if err != nil {
		return err
	}

	logger.Info("wrote field", statsFields(field.Calculate(out))...)
	return nil
}

func statsFields(s field.Stats) []zap.Field {
	return []zap.Field{
		zap.Int("valid", s.Valid),
		zap.Int("missing", s.Missing),
		zap.Float64("mean", s.Mean),
		zap.Float64("min", s.Min),
		zap.Float64("max", s.Max),
		zap.Float64("roughness", s.Roughness),
	}
}
