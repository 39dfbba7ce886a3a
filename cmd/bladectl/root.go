package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/logging"
)

type options struct {
	file     string
	preset   string
	tipStyle string
	unit     string
	output   string
	verbose  bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "bladectl",
		Short: "Design whirligig blades and export cutting templates",
		Long: `bladectl evaluates a blade design and writes templates for it.

Parameters come from a YAML file (--file) laid over a preset (--preset).
Lengths in the file are inches unless it sets "unit: mm".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if o.verbose {
				level = "debug"
			}
			var err error
			o.logger, err = logging.New(level, true)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.file, "file", "f", "", "YAML parameter file")
	pf.StringVarP(&o.preset, "preset", "p", string(blade.TipLeaf), "base preset when no file is given (leaf, rounded)")
	pf.StringVar(&o.tipStyle, "tip-style", "", "switch the loaded design to another tip style")
	pf.StringVarP(&o.unit, "unit", "u", string(blade.Inches), "display unit (in, mm)")
	pf.StringVarP(&o.output, "output", "o", "-", "output file, - for stdout")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newMetricsCmd(o),
		newContourCmd(o),
		newSVGCmd(o),
		newPNGCmd(o),
		newPDFCmd(o),
		newBatchCmd(o),
		newBalanceCmd(o),
		newPresetCmd(o),
		newHashCmd(o),
	)
	return root
}

// params loads the design named by the flags.
func (o *options) params() (blade.Parameters, error) {
	var (
		p   blade.Parameters
		err error
	)
	if o.file != "" {
		p, err = blade.LoadFile(o.file)
	} else {
		p, err = blade.Preset(blade.TipStyle(o.preset))
	}
	if err != nil {
		return blade.Parameters{}, err
	}
	if o.tipStyle != "" {
		if p, err = blade.WithTipStyle(p, blade.TipStyle(o.tipStyle)); err != nil {
			return blade.Parameters{}, err
		}
	}
	o.logger.Debug("parameters loaded", zap.String("tip_style", string(p.TipStyle)), zap.String("file", o.file))
	return p, nil
}

// evaluate loads and validates the design. Degenerate designs are an error
// for every command.
func (o *options) evaluate() (blade.Parameters, metrics.DerivedMetrics, error) {
	p, err := o.params()
	if err != nil {
		return p, metrics.DerivedMetrics{}, err
	}
	m, err := metrics.Calculate(p)
	return p, m, err
}

func (o *options) displayUnit() (blade.Unit, error) {
	return blade.ParseUnit(o.unit)
}

// writeOutput runs write against the output file or the command's stdout.
func (o *options) writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if o.output == "" || o.output == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(o.output)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	o.logger.Info("wrote file", zap.String("path", o.output))
	return nil
}
