// Package cli wires the command-line surface to the search engine.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// Execute runs the root command and returns the process exit code.
func Execute() int {
	var exitCode int
	cmd := newRootCmd(&exitCode)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "linegrep:", err)
		return 2
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	cfg := Config{}
	var colorFlag string
	var contextBoth int
	var patternFlags []string

	cmd := &cobra.Command{
		Use:     "linegrep [flags] PATTERN [PATH ...]",
		Short:   "Search line-oriented text for pattern matches",
		Version: version,
		Long: `linegrep scans files or standard input line by line and reports lines
matching a pattern, with optional surrounding context.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Patterns = patternFlags
			if len(cfg.Patterns) == 0 {
				if len(args) == 0 {
					return fmt.Errorf("no pattern specified")
				}
				cfg.Patterns = []string{args[0]}
				args = args[1:]
			}
			cfg.Paths = args

			mode, err := ParseColorMode(colorFlag)
			if err != nil {
				return err
			}
			cfg.Color = mode

			if contextBoth > 0 {
				if !cmd.Flags().Changed("before-context") {
					cfg.ContextBefore = contextBoth
				}
				if !cmd.Flags().Changed("after-context") {
					cfg.ContextAfter = contextBoth
				}
			}

			fc, err := LoadFileConfig()
			if err != nil {
				return err
			}
			if err := fc.apply(&cfg, cmd.Flags().Changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			*exitCode = Run(cfg)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&patternFlags, "regexp", "e", nil, "pattern to search for; may be repeated")
	flags.BoolVarP(&cfg.Fixed, "fixed-strings", "F", false, "treat patterns as fixed strings")
	flags.BoolVarP(&cfg.PCRE, "pcre", "P", false, "use the PCRE2 regex engine")
	flags.BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", false, "case-insensitive matching")
	flags.BoolVarP(&cfg.SmartCase, "smart-case", "S", false, "case-insensitive unless a pattern has uppercase")
	flags.BoolVarP(&cfg.Invert, "invert-match", "v", false, "select non-matching lines")
	flags.BoolVarP(&cfg.LineNumbers, "line-number", "n", false, "prefix output with line numbers")
	flags.BoolVarP(&cfg.CountOnly, "count", "c", false, "print only a count of matching lines")
	flags.BoolVarP(&cfg.FilesOnly, "files-with-matches", "l", false, "print only names of files with matches")
	flags.IntVarP(&cfg.ContextBefore, "before-context", "B", 0, "lines of leading context")
	flags.IntVarP(&cfg.ContextAfter, "after-context", "A", 0, "lines of trailing context")
	flags.IntVarP(&contextBoth, "context", "C", 0, "lines of leading and trailing context")
	flags.BoolVarP(&cfg.Recursive, "recursive", "r", false, "search directories recursively")
	flags.BoolVar(&cfg.Hidden, "hidden", false, "search hidden files and directories")
	flags.BoolVar(&cfg.NoIgnore, "no-ignore", false, "do not respect .gitignore files")
	flags.BoolVar(&cfg.WatchMode, "watch", false, "watch paths and search appended content")
	flags.BoolVar(&cfg.JSONOutput, "json", false, "emit results as JSON lines")
	flags.StringVar(&colorFlag, "color", "auto", "when to use color: auto, always, never")
	flags.IntVarP(&cfg.Workers, "workers", "j", 0, "parallel workers for recursive search (0 = auto)")
	flags.Int64Var(&cfg.MmapThreshold, "mmap-threshold", 0, "file size in bytes above which mmap is used (0 = default)")

	return cmd
}
