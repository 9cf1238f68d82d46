package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/image-effects/cmd"
	"github.com/rm-hull/image-effects/internal"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	var logLevel string
	var quality int
	var debug bool
	var logger zerolog.Logger

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	rootCmd := &cobra.Command{
		Use:          "image-effects",
		Long:         `Apply fixed image effects (edge detect, blur, sharpen, grayscale, sepia, invert)`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := internal.ParseLogLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			cfg.LogLevel = level
			logger = internal.NewLogger(os.Stderr, cfg.LogLevel)
			if debug {
				internal.ShowVersion(logger)
				internal.EnvironmentVars(logger, internal.EnvPrefix)
			}
			return nil
		},
	}
	bindRootFlags(rootCmd.PersistentFlags(), cfg, &logLevel, &debug)

	processCmd := &cobra.Command{
		Use:   "process <input> <effect> <output> [--quality <1-100>]",
		Short: "Apply an effect to an image and write the result",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			if quality < 1 || quality > 100 {
				return fmt.Errorf("invalid --quality %d: must be between 1 and 100", quality)
			}
			cfg.JPEGQuality = quality
			return cmd.Process(args[0], args[1], args[2], cfg, logger)
		},
	}
	processCmd.Flags().IntVar(&quality, "quality", cfg.JPEGQuality, "JPEG quality used when the output is a .jpg/.jpeg")

	effectsCmd := &cobra.Command{
		Use:   "effects",
		Short: "List the available effects",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.ListEffects(c.OutOrStdout())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintln(c.OutOrStdout(), internal.Version())
		},
	}

	rootCmd.AddCommand(processCmd, effectsCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindRootFlags(flags *pflag.FlagSet, cfg *internal.Config, logLevel *string, debug *bool) {
	flags.StringVar(logLevel, "log-level", cfg.LogLevel.String(), "Log level (trace, debug, info, warn, error)")
	flags.BoolVar(debug, "debug", false, "Log version and "+internal.EnvPrefix+"* environment variables before running")
}
