package cli

import (
	"context"
	"encoding/json"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/dom"
	"github.com/matzehuels/webpaste/pkg/errors"
	"github.com/matzehuels/webpaste/pkg/pipeline"
	"github.com/matzehuels/webpaste/pkg/treeviz"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format string   // yaml, json, dot or svg
	after  bool     // dump the tree after the rules ran
	skip   []string // rules to leave out with --after
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: formatYAML}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Dump the parsed tree of an HTML fragment",
		Long: `Dump the tree the parser builds for an HTML fragment, rooted at the
synthetic <body> element. With --after the tree is dumped after the rewrite
rules ran, which shows exactly what each rule left behind.

The dot and svg formats draw the tree as a Graphviz diagram.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runInspect(cmd, input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: yaml, json, dot, svg")
	cmd.Flags().BoolVar(&opts.after, "after", false, "dump the tree after cleaning")
	cmd.Flags().StringSliceVar(&opts.skip, "skip", nil, "rules to skip with --after")

	return cmd
}

// runInspect parses the fragment, optionally applies the rules, and writes
// the tree snapshot.
func (c *CLI) runInspect(cmd *cobra.Command, input string, opts inspectOpts) error {
	if err := errors.ValidateFormat(opts.format, formatYAML, formatJSON, formatDOT, formatSVG); err != nil {
		return err
	}
	ctx := withLogger(cmd.Context(), c.Logger)

	fragment, err := readInput(ctx, cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	popts := pipeline.Options{Skip: opts.skip, Logger: c.Logger}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	root, err := pipeline.Parse(fragment, popts)
	if err != nil {
		return err
	}
	if opts.after {
		if _, err := pipeline.Apply(ctx, root, popts); err != nil {
			return err
		}
	}

	data, err := marshalSnapshot(ctx, dom.Snap(root), opts.format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func marshalSnapshot(ctx context.Context, s *dom.Snapshot, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatDOT:
		return []byte(treeviz.ToDOT(s)), nil
	case formatSVG:
		data, err = treeviz.RenderSVG(ctx, treeviz.ToDOT(s))
	case formatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return data, nil
}
