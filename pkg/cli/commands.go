package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Fepozopo/shotframe/pkg/codec"
	"github.com/Fepozopo/shotframe/pkg/frame"
	"github.com/Fepozopo/shotframe/pkg/pipeline"
)

var (
	// Access these variables only from a main package:

	Root = &cobra.Command{
		Use:           "shotframe",
		Short:         "Crop screenshots and round their corners",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFiles, _ := cmd.Flags().GetStringSlice("env-file")
			d, err := LoadDefaults(envFiles...)
			if err != nil {
				return fmt.Errorf("invalid defaults: %w", err)
			}
			if !cmd.Flags().Changed("log-level") {
				LoggerLevel = d.LogLevel
			}
			defaults = d

			ctx := cmd.Context()
			l := logger.FromCtx(ctx).WithLevel(LoggerLevel)
			ctx = logger.CtxWithLogger(ctx, l)
			cmd.SetContext(ctx)
			logger.Debugf(ctx, "log-level: %v", LoggerLevel)
			return nil
		},
	}

	Crop = &cobra.Command{
		Use:   "crop <input>",
		Short: "Strip a margin from every edge of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			margin := stringFlag(cmd.Flags(), "margin", defaults.Margin.String())
			return runSteps(cmd, args[0], pipeline.Step{Name: "crop", Args: []string{margin}})
		},
	}

	Round = &cobra.Command{
		Use:   "round <input>",
		Short: "Round the corners of an image (experimental)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			step := pipeline.Step{Name: "roundCorners", Args: []string{
				stringFlag(flags, "radius", strconv.Itoa(defaults.Radius)),
				stringFlag(flags, "fill", defaults.Fill.String()),
				stringFlag(flags, "corners", defaults.Corners.String()),
			}}
			return runSteps(cmd, args[0], step)
		},
	}

	Trim = &cobra.Command{
		Use:   "trim <input>",
		Short: "Crop away a uniform border",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fuzz := stringFlag(cmd.Flags(), "fuzz", strconv.FormatFloat(defaults.Fuzz, 'f', -1, 64))
			return runSteps(cmd, args[0], pipeline.Step{Name: "trim", Args: []string{fuzz}})
		},
	}

	Run = &cobra.Command{
		Use:   "run <pipeline.yaml> <input>...",
		Short: "Apply a pipeline file to many images",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := pipeline.LoadConfig(args[0])
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString("output-dir"); out != "" {
				cfg.Output = out
			}
			r, err := pipeline.NewRunner(cfg)
			if err != nil {
				return err
			}
			r.Concurrency, _ = cmd.Flags().GetInt("jobs")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")
			var reg *prometheus.Registry
			if metricsFile != "" {
				reg = prometheus.NewRegistry()
				r.Metrics = pipeline.NewMetrics(reg)
			}

			logger.Debugf(ctx, "running %d steps on %d files", len(cfg.Steps), len(args)-1)
			var result *multierror.Error
			if err := r.Run(ctx, args[1:]); err != nil {
				result = multierror.Append(result, err)
			}
			if reg != nil {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					result = multierror.Append(result, fmt.Errorf("unable to write metrics: %w", err))
				}
			}
			return result.ErrorOrNil()
		},
	}

	Identify = &cobra.Command{
		Use:   "identify <input>...",
		Short: "Print the format, size and detected border of images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fuzz, err := pipeline.ParseFuzz(stringFlag(cmd.Flags(), "fuzz", strconv.FormatFloat(defaults.Fuzz, 'f', -1, 64)))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range args {
				buf, format, err := codec.Load(path)
				if err != nil {
					return err
				}
				st, err := os.Stat(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s, Size: %s, Border: %s\n",
					path, codec.Info(buf, format), humanize.Bytes(uint64(st.Size())), frame.DetectMargin(buf, fuzz))
			}
			return nil
		},
	}

	ListCommands = &cobra.Command{
		Use:   "commands",
		Short: "List the commands usable in pipeline files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range pipeline.Commands {
				fmt.Fprintln(cmd.OutOrStdout(), c.Help())
			}
		},
	}

	VersionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}

	Update = &cobra.Command{
		Use:   "update",
		Short: "Update to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return CheckForUpdates(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), yes)
		},
	}

	LoggerLevel = logger.LevelWarning

	defaults = BuiltinDefaults()
)

func init() {
	Root.PersistentFlags().Var(&LoggerLevel, "log-level", "trace, debug, info, warning, error, fatal or panic")
	Root.PersistentFlags().StringSlice("env-file", nil, "env files to load defaults from (default .env)")

	for _, c := range []*cobra.Command{Crop, Round, Trim} {
		c.Flags().StringP("output", "o", "", "output path (default <input>"+pipeline.DefaultSuffix+".<ext>)")
	}
	Crop.Flags().StringP("margin", "m", "", "n | v,h | left,top,right,bottom (env "+EnvMargin+")")
	Round.Flags().StringP("radius", "r", "", "corner radius in pixels (env "+EnvRadius+")")
	Round.Flags().String("fill", "", "fill color: CSS name, #hex or c0,c1,c2,c3 (env "+EnvFill+")")
	Round.Flags().String("corners", "", "all or a list of tl,tr,bl,br (env "+EnvCorners+")")
	for _, c := range []*cobra.Command{Trim, Identify} {
		c.Flags().String("fuzz", "", "color distance treated as equal, e.g. 12 or 5% (env "+EnvFuzz+")")
	}
	Run.Flags().String("output-dir", "", "override the pipeline output directory")
	Run.Flags().IntP("jobs", "j", 0, "files processed at once (default NumCPU)")
	Run.Flags().String("metrics-file", "", "write Prometheus metrics in text format to this file")
	Update.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	Root.AddCommand(Crop)
	Root.AddCommand(Round)
	Root.AddCommand(Trim)
	Root.AddCommand(Run)
	Root.AddCommand(Identify)
	Root.AddCommand(ListCommands)
	Root.AddCommand(VersionCmd)
	Root.AddCommand(Update)
}

// stringFlag returns the flag value when it was given and def otherwise.
func stringFlag(flags *pflag.FlagSet, name, def string) string {
	if !flags.Changed(name) {
		return def
	}
	v, err := flags.GetString(name)
	if err != nil {
		return def
	}
	return v
}

// runSteps applies steps to a single input and writes the result to the
// --output path, or next to the input.
func runSteps(cmd *cobra.Command, input string, steps ...pipeline.Step) error {
	r, err := pipeline.NewRunner(&pipeline.Config{Steps: steps})
	if err != nil {
		return err
	}
	dst, _ := cmd.Flags().GetString("output")
	if dst == "" {
		dst = r.Config.OutputPath(input)
	}
	if err := r.ProcessFileTo(cmd.Context(), input, dst); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dst)
	return nil
}
