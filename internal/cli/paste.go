package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/clipboard"
	"github.com/matzehuels/webpaste/pkg/pipeline"
)

// pasteOpts holds the command-line flags for the paste command.
type pasteOpts struct {
	noTrigger bool     // rewrite the clipboard only
	skip      []string // rule names to leave out
}

// pasteCommand creates the paste command.
func (c *CLI) pasteCommand() *cobra.Command {
	var opts pasteOpts

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Clean the clipboard HTML and paste it",
		Long: `Clean the HTML on the macOS clipboard and paste it into the frontmost app.

The clipboard's HTML flavour is cleaned and written back together with the
original plain-text flavour, then Cmd-V is posted through System Events.
Posting keystrokes needs the Accessibility permission for the terminal or
launcher running webpaste. Use --no-trigger (or [paste] trigger = false in
the config file) to only rewrite the clipboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaste(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noTrigger, "no-trigger", false, "rewrite the clipboard without pasting")
	cmd.Flags().StringSliceVar(&opts.skip, "skip", nil, "rules to skip (see 'webpaste rules')")

	return cmd
}

// runPaste reads, cleans and writes back the clipboard, then pastes.
func (c *CLI) runPaste(cmd *cobra.Command, opts pasteOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)
	cb := c.Clipboard

	trigger := c.Config.Paste.Trigger && !opts.noTrigger
	if trigger {
		if err := cb.CheckAccess(ctx); err != nil {
			return err
		}
	}

	html, err := cb.ReadHTML(ctx)
	if err != nil {
		return err
	}
	plain, err := cb.ReadText(ctx)
	if stderrors.Is(err, clipboard.ErrNoText) {
		printWarning(cmd.ErrOrStderr(), "No plain text in clipboard; writing HTML only")
		plain = ""
	} else if err != nil {
		return err
	}

	runner := c.newRunner()
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Clean(ctx, html, pipeline.Options{Skip: opts.skip})
	if err != nil {
		return err
	}
	if err := cb.Write(ctx, res.HTML, plain); err != nil {
		return err
	}
	prog.done("Clipboard cleaned")

	if !trigger {
		printSuccess(cmd.ErrOrStderr(), "Clipboard cleaned")
		return nil
	}
	if err := cb.Paste(ctx); err != nil {
		return err
	}
	logger.Debug("paste posted")
	return nil
}
