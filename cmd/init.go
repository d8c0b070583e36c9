package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/fanc/internal/config"
)

const starterProgram = `// Generated by fanc init.
int square(int n) {
    return n * n;
}

void main() {
    byte i = 0b;
    while (i < 5b) {
        printi(square(i));
        i = i + 1b;
    }
    print("done");
}
`

// init: scaffold a new project
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a fanc.toml and a starter main.fanc",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding fanc project in %q ...\n", dir)

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			files := []struct {
				name, content string
			}{
				{config.DefaultFile, config.Template},
				{"main.fanc", starterProgram},
			}
			for _, f := range files {
				path := filepath.Join(dir, f.name)
				if err := writeNew(path, f.content, force); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	return cmd
}

func writeNew(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
