// Command fieldopgen writes field-wise operator methods for the struct
// types of Go packages.
//
// Usage:
//
//	fieldopgen [flags] [dir ...]
//
// With no directories it processes the current one, which makes it
// suitable for
//
//	//go:generate go run github.com/jba/fieldops/cmd/fieldopgen
//
// A type opts in with a directive in its doc comment,
//
//	//fieldops:gen x y ops:arith,eq
//	type Point struct{ x, y float64 }
//
// or with an entry in the package's declaration file (fieldops.yaml by
// default). All methods go to one file per package, fieldops_gen.go by
// default.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/jba/fieldops/generate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	logger *zap.Logger

	declFile string
	output   string
	dryRun   bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "fieldopgen [dir ...]",
	Short: "Generate field-wise operator methods for struct types",
	Long: `fieldopgen reads the Go package in each directory, finds the types that
opt in with a //fieldops:gen directive or an entry in the declaration file,
and writes their arithmetic, comparison and String methods to one file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.DisableStacktrace = true
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.Flags().StringVar(&declFile, "decls", generate.DefaultDeclFile, "declaration file name in each package directory")
	rootCmd.Flags().StringVarP(&output, "output", "o", generate.DefaultOutput, "generated file name in each package directory")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print generated code instead of writing it")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fieldopgen: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return generateDirs(cmd.Context(), dirs, generate.Options{
		Output:   output,
		DeclFile: declFile,
		DryRun:   dryRun,
		Stdout:   cmd.OutOrStdout(),
		Logger:   logger,
	})
}

// generateDirs runs the generator on every directory and reports all
// failures, not only the first.
func generateDirs(ctx context.Context, dirs []string, opts generate.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	if opts.DryRun {
		// Output to one writer must not interleave.
		g.SetLimit(1)
	}
	errs := make([]error, len(dirs))
	for i, dir := range dirs {
		g.Go(func() error {
			errs[i] = generate.Run(ctx, dir, opts)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
