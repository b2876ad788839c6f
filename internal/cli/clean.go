package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/errors"
	"github.com/matzehuels/webpaste/pkg/pipeline"
)

// cleanOpts holds the command-line flags for the clean command.
type cleanOpts struct {
	output   string   // output file; stdout when empty
	diff     bool     // print a character diff of input and output to stderr
	stats    bool     // log per-rule match counts
	skip     []string // rule names to leave out
	maxBytes int      // input size limit; negative disables
}

// cleanCommand creates the clean command.
func (c *CLI) cleanCommand() *cobra.Command {
	var opts cleanOpts

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean an HTML fragment",
		Long: `Clean an HTML fragment read from a file, or from stdin when no file is given.

The cleaned fragment is written to stdout, or to the file named by --output.
Both receive the same bytes; only an interactive terminal gets a trailing
newline.

Use --diff to see what changed and --stats for per-rule match counts.`,
		Example: `  pbpaste -Prefer html | webpaste clean
  webpaste clean copied.html -o clean.html --stats
  webpaste clean copied.html --skip lone-div --diff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runClean(cmd, input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a character diff of input and output to stderr")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "log per-rule match counts")
	cmd.Flags().StringSliceVar(&opts.skip, "skip", nil, "rules to skip (see 'webpaste rules')")
	cmd.Flags().IntVar(&opts.maxBytes, "max-bytes", pipeline.DefaultMaxBytes, "reject larger inputs (negative disables)")

	return cmd
}

// runClean reads the fragment, cleans it and writes the result.
func (c *CLI) runClean(cmd *cobra.Command, input string, opts cleanOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)

	fragment, err := readInput(ctx, cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	runner := c.newRunner()
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Clean(ctx, fragment, pipeline.Options{Skip: opts.skip, MaxBytes: opts.maxBytes})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Cleaned %d bytes", res.Stats.InputBytes))

	if opts.stats {
		for _, r := range res.Report.Rules {
			logger.Info("rule", "name", r.Name, "matches", r.Matches)
		}
		printStats(cmd.ErrOrStderr(), res.Stats.InputBytes, res.Stats.OutputBytes, res.Report.Total())
	}
	if opts.diff {
		ins, del := diffSummary(fragment, res.HTML)
		logger.Debug("diff", "inserted", ins, "deleted", del)
		printDiff(cmd.ErrOrStderr(), fragment, res.HTML)
	}

	if opts.output == "" {
		return writeFragment(cmd.OutOrStdout(), res.HTML)
	}
	if err := os.WriteFile(opts.output, []byte(res.HTML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.ErrOrStderr(), "Cleaned fragment written")
	printFile(cmd.ErrOrStderr(), opts.output)
	return nil
}

// writeFragment writes html as cleaned, the same bytes -o stores. Only a
// terminal gets a trailing newline, so pipes see the exact fragment.
func writeFragment(w io.Writer, html string) error {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		html += "\n"
	}
	_, err := io.WriteString(w, html)
	return err
}

// readInput returns the contents of path, or of stdin when path is empty.
// An interactive stdin is rejected rather than waited on.
func readInput(ctx context.Context, stdin io.Reader, path string) (string, error) {
	logger := loggerFromContext(ctx)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
		}
		logger.Debug("read input", "file", path, "bytes", len(data))
		return string(data), nil
	}

	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", errors.New(errors.ErrCodeInvalidInput, "no input: pass a file or pipe HTML on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	logger.Debug("read input", "file", "-", "bytes", len(data))
	return string(data), nil
}
