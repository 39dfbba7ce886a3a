package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"Whirligig/internal/auth"
	"Whirligig/internal/blade"
	"Whirligig/internal/calc/autobalance"
	"Whirligig/internal/calc/batch"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/calc/report"
	"Whirligig/internal/contour"
	"Whirligig/internal/export/laser"
	"Whirligig/internal/export/template"
)

func newMetricsCmd(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print balance and feel metrics for a design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.displayUnit()
			if err != nil {
				return err
			}
			_, m, err := o.evaluate()
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, func(w io.Writer) error {
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(m)
				}
				return printMetrics(w, m, u)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printMetrics(w io.Writer, m metrics.DerivedMetrics, u blade.Unit) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CG\t%s (%.1f%%)\n", blade.Format(m.CGX, u), m.CGPercent)
	fmt.Fprintf(tw, "Sweet spot\t%s - %s\n", blade.Format(m.SweetStart, u), blade.Format(m.SweetEnd, u))
	fmt.Fprintf(tw, "In sweet spot\t%v\n", m.InSweetSpot)
	fmt.Fprintf(tw, "Sensitivity\t%s (%.2f)\n", m.Sensitivity, m.TorqueDifficulty)
	fmt.Fprintf(tw, "Flywheel\t%s (%.1f)\n", m.FlywheelRating, m.FlywheelScore)
	fmt.Fprintf(tw, "Moment of inertia\t%.1f\n", m.MomentOfInertia)
	fmt.Fprintf(tw, "Area\t%.2f\n", m.TotalArea)
	for _, a := range m.Advice {
		fmt.Fprintf(tw, "Advice\t%s\n", a)
	}
	return tw.Flush()
}

func newContourCmd(o *options) *cobra.Command {
	var (
		scale float64
		kerf  bool
	)
	cmd := &cobra.Command{
		Use:   "contour",
		Short: "Print the outline as SVG path data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scale <= 0 {
				return fmt.Errorf("--scale must be > 0, got %g", scale)
			}
			p, err := o.params()
			if err != nil {
				return err
			}
			if err := blade.Validate(p); err != nil {
				return err
			}
			path := contour.Build(p, scale, kerf)
			return o.writeOutput(cmd, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, path.Data())
				return err
			})
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 1, "output units per inch")
	cmd.Flags().BoolVar(&kerf, "kerf", false, "apply the kerf offset")
	return cmd
}

func newSVGCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "svg",
		Short: "Write a laser cutting SVG (inches, kerf applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, m, err := o.evaluate()
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, func(w io.Writer) error { return laser.Write(w, p, m) })
		},
	}
}

func newPNGCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "png",
		Short: fmt.Sprintf("Write a printable %d DPI template", template.DPI),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.displayUnit()
			if err != nil {
				return err
			}
			p, m, err := o.evaluate()
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, func(w io.Writer) error { return template.Render(w, p, m, u) })
		},
	}
}

func newPDFCmd(o *options) *cobra.Command {
	var meta report.Meta
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Write a printable PDF report at true scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.displayUnit()
			if err != nil {
				return err
			}
			p, m, err := o.evaluate()
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, func(w io.Writer) error { return report.Write(w, p, m, u, meta) })
		},
	}
	cmd.Flags().StringVar(&meta.Title, "title", "", "report title")
	cmd.Flags().StringVar(&meta.Project, "project", "", "project name")
	cmd.Flags().StringVar(&meta.Author, "author", "", "author")
	cmd.Flags().StringVar(&meta.Notes, "notes", "", "free text printed under the table")
	return cmd
}

func newBatchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <workbook.xlsx>",
		Short: "Evaluate every row of a workbook and write a results workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			items, err := batch.ImportSheet(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out, err := batch.Calculate(context.Background(), items, metrics.NewCache(len(items)))
			if err != nil {
				return err
			}
			o.logger.Info("batch evaluated", zap.Int("count", out.Count), zap.Int("failed", out.Failed))
			return o.writeOutput(cmd, func(w io.Writer) error { return batch.WriteSheet(w, out) })
		},
	}
}

func newBalanceCmd(o *options) *cobra.Command {
	var target float64
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Tune the design so its CG sits at a target percent of the exposed length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.params()
			if err != nil {
				return err
			}
			res, err := autobalance.Balance(p, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), res.Notes)
			return o.writeOutput(cmd, func(w io.Writer) error { return writeYAML(w, res.Parameters) })
		},
	}
	cmd.Flags().Float64Var(&target, "target", autobalance.DefaultTarget, "target CG in percent of exposed length")
	return cmd
}

func newPresetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "preset <leaf|rounded>",
		Short:     "Print a preset as a YAML parameter file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(blade.TipLeaf), string(blade.TipRounded)},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := blade.Preset(blade.TipStyle(args[0]))
			if err != nil {
				return err
			}
			return o.writeOutput(cmd, func(w io.Writer) error { return writeYAML(w, p) })
		},
	}
}

func newHashCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
