package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/fanc/internal/compiler"
	"github.com/arnavsurve/fanc/internal/compiler/diag"
	"github.com/arnavsurve/fanc/internal/config"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		outDir string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check (.fanc) sources and print their scope traces",
		Long: `Check each source file given, or every matching file under the given
directories (default "."). The first error in a file is reported and the
command exits with status 1 if any file failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			files, err := collectSources(args, root.cfg)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no %s sources found", root.cfg.Source.Extension)
			}

			r := newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), root.cfg)
			r.quiet = quiet
			if outDir != "" {
				r.outDir = outDir
				r.write = true
			}
			r.showNames = len(files) > 1

			if failed := r.checkFiles(cmd.Context(), files); failed > 0 {
				return ErrCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write traces to this directory instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print traces")
	return cmd
}

// reporter is the diagnostics sink: it checks files one by one and prints
// either the trace or the first diagnostic of each.
type reporter struct {
	out, errOut io.Writer
	styles      styles
	ext         string
	outDir      string
	write       bool
	quiet       bool
	showNames   bool
}

func newReporter(out, errOut io.Writer, cfg *config.Config) *reporter {
	return &reporter{
		out:    out,
		errOut: errOut,
		styles: newStyles(errOut, cfg.ColorEnabled()),
		ext:    cfg.Source.Extension,
		outDir: cfg.Output.Dir,
		write:  cfg.Output.WriteTrace,
	}
}

// checkFiles returns how many files failed.
func (r *reporter) checkFiles(ctx context.Context, files []string) int {
	failed := 0
	for _, file := range files {
		if err := r.checkFile(ctx, file); err != nil {
			failed++
		}
	}
	return failed
}

func (r *reporter) checkFile(ctx context.Context, file string) error {
	res, err := compiler.CheckFile(ctx, file, r.ext)
	if err != nil {
		r.report(file, err)
		return err
	}

	if r.write {
		path, err := compiler.WriteTrace(res, r.outDir)
		if err != nil {
			r.report(file, err)
			return err
		}
		if !r.quiet {
			fmt.Fprintf(r.errOut, "%s %s\n", r.styles.success.Render("ok"), r.styles.status.Render(path))
		}
		return nil
	}

	if r.quiet {
		return nil
	}
	if r.showNames {
		fmt.Fprintf(r.out, "== %s ==\n", file)
	}
	fmt.Fprint(r.out, res.Trace)
	return nil
}

func (r *reporter) report(file string, err error) {
	msg := err.Error()
	if _, ok := diag.As(err); !ok {
		msg = "error: " + msg
	}
	fmt.Fprintf(r.errOut, "%s: %s\n", r.styles.path.Render(file), r.styles.err.Render(msg))
}
