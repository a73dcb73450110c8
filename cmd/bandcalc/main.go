package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/config"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/output"
	"github.com/rgehrsitz/bandcalc/internal/server"
	"github.com/rgehrsitz/bandcalc/internal/transform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	logLevels = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"off":   logrus.PanicLevel,
	}

	log = logrus.WithField("module", "cli")
)

func setupLogging(level string) error {
	lvl, ok := logLevels[strings.ToLower(level)]
	if !ok {
		return fmt.Errorf("--log-level must be one of trace, debug, info, warn, error, off; got %q", level)
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	logrus.SetLevel(lvl)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bandcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bandcalc",
		Short: "UK property levy and child maintenance calculator",
		Long: `Banded levy engine for SDLT (England and Northern Ireland), LBTT (Scotland)
and LTT (Wales), plus the CMS child maintenance formula.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			return setupLogging(level)
		},
	}
	root.PersistentFlags().String("rates", "", "Path to a rate tables file (YAML or JSON); built-in tables when empty")
	root.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error, off)")

	root.AddCommand(levyCmd())
	root.AddCommand(maintenanceCmd())
	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(maxPriceCmd())
	root.AddCommand(schedulesCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadEngine builds the engine from --rates.
func loadEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	rates, _ := cmd.Flags().GetString("rates")
	engine, err := config.NewInputParser().LoadEngine(rates)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"rates":    rates,
		"tax_year": engine.Regulatory.Metadata.TaxYear,
	}).Debug("rate tables loaded")
	return engine, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Run every calculation in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			rates, _ := cmd.Flags().GetString("rates")
			if rates == "" && cfg.Metadata.RatesFile != "" {
				rates = cfg.Metadata.RatesFile
			}
			engine, err := parser.LoadEngine(rates)
			if err != nil {
				return err
			}

			whatIf, _ := cmd.Flags().GetStringArray("what-if")
			if cfg, err = applyWhatIf(cfg, whatIf); err != nil {
				return err
			}

			results, err := engine.RunBatch(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"file":        inputFile,
				"levy":        len(results.Levy),
				"maintenance": len(results.Maintenance),
			}).Info("batch calculated")

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			return emit(cmd, results, format, save)
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().StringArray("what-if", nil, "Apply a transform before calculating, e.g. set_buyer:type=ftb or set_nights:nights=104,case=alex (repeatable)")
	return cmd
}

// applyWhatIf applies --what-if transforms in order and notes them in the
// batch description.
func applyWhatIf(cfg *domain.Configuration, specs []string) (*domain.Configuration, error) {
	if len(specs) == 0 {
		return cfg, nil
	}
	registry := transform.NewTransformRegistry()
	transforms := make([]transform.BatchTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("--what-if %q: %w", spec, err)
		}
		transforms = append(transforms, t)
	}

	modified, err := transform.ApplyTransforms(cfg, transforms)
	if err != nil {
		return nil, err
	}
	summary := transform.Describe(transforms)
	if modified.Metadata.Description == "" {
		modified.Metadata.Description = "What-if: " + summary
	} else {
		modified.Metadata.Description += " (what-if: " + summary + ")"
	}
	log.WithField("transforms", len(transforms)).Debug("what-if applied")
	return modified, nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a batch file (and --rates, if given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			if _, err := config.NewInputParser().LoadFromFile(inputFile); err != nil {
				return err
			}
			if _, err := loadEngine(cmd); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", inputFile)
			return nil
		},
	}
}

func schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List the loaded rate schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rate tables for %s\n\n", engine.Regulatory.Metadata.TaxYear)
			for _, s := range engine.Schedules() {
				fmt.Fprintln(out, s.Name)
				for _, band := range s.Bands {
					fmt.Fprintf(out, "  %s\n", band.Label())
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")
			return server.New(engine).ListenAndServe(addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}

// emit formats results with the named formatter, writing to stdout or, for
// binary formats and --save, to a timestamped file.
func emit(cmd *cobra.Command, results *domain.BatchResults, format string, save bool) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	if save || output.IsBinary(format) {
		path, err := output.WriteFormatted(f, results, extensionFor(format))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func extensionFor(format string) string {
	switch format {
	case "console", "console-plain":
		return "txt"
	}
	return format
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
