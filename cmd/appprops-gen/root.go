package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Azhovan/appprops/internal/gen"
)

// Version is set at build time.
var Version = "dev"

const envPrefix = "APPPROPS"

// newRootCmd builds the command. Every flag can also be set through an
// APPPROPS_* environment variable (APPPROPS_OUTPUT, APPPROPS_LOG_LEVEL, ...).
func newRootCmd(fsys afero.Fs) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "appprops-gen",
		Short: "Generate embedded configuration loaders",
		Long: `appprops-gen reads the Go package in --dir, finds struct types annotated with

	//appprops:load src=<file>

and writes a LoadX function for each of them. The file is embedded at
compile time; ${VAR} references are resolved from the environment when
the loader runs.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log-level")))
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", v.GetString("log-level"), err)
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			target, err := gen.Run(cmd.Context(), gen.Options{
				Dir:    dir(v.GetString("dir")),
				Output: v.GetString("output"),
				Types:  list(v.GetStringSlice("type")),
				Tags:   list(v.GetStringSlice("tags")),
				FS:     fsys,
				Logger: &logger,
			})
			if err != nil {
				return err
			}

			logger.Debug().Str("file", target).Msg("done")
			return nil
		},
	}

	bindFlags(v, cmd.Flags())
	return cmd
}

// bindFlags declares the flags and binds them, and their APPPROPS_*
// environment variables, to v.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.String("dir", "", "package directory (default: current directory)")
	flags.StringP("output", "o", gen.DefaultOutput, "generated file name, relative to --dir")
	flags.StringSlice("type", nil, "only generate loaders for these types (repeatable)")
	flags.StringSlice("tags", nil, "build tags used when loading the package")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// BindPFlags only fails on a nil flag set.
	_ = v.BindPFlags(flags)
}

// dir defaults to the directory go generate runs us in.
func dir(flag string) string {
	if flag != "" {
		return flag
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// list flattens comma-separated entries. Values from the environment arrive
// as a single "a,b" element.
func list(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
