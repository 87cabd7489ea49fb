package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/humanizer-backend/internal/humanizer"
)

type rewriteOptions struct {
	mode   string
	seed   uint64
	edits  bool
	diff   bool
	asJSON bool
}

type rewriteOutput struct {
	humanizer.Result
	Mode string           `json:"mode"`
	Seed uint64           `json:"seed"`
	Diff []humanizer.Edit `json:"diff,omitempty"`
}

func newRewriteCmd(root *rootOptions) *cobra.Command {
	opts := &rewriteOptions{}
	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Rewrite a file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, root, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", string(humanizer.ModeCasual), "style hint: casual, professional, academic, creative or friendly")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for a reproducible rewrite (random when unset)")
	f.BoolVar(&opts.edits, "edits", false, "print the edit log after the text")
	f.BoolVar(&opts.diff, "diff", false, "print a diff against the input after the text")
	f.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	return cmd
}

func runRewrite(cmd *cobra.Command, root *rootOptions, opts *rewriteOptions, args []string) error {
	mode, err := humanizer.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}
	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("no text to rewrite")
	}

	seed := opts.seed
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}

	start := time.Now()
	res := humanizer.New(cfg).Rewrite(input, humanizer.Options{Mode: mode, Rand: humanizer.NewRand(seed)})
	root.log.Debug("rewrite finished",
		"mode", mode.String(),
		"seed", seed,
		"characters", len(input),
		"edits", len(res.Replacements),
		"took", time.Since(start).String(),
	)

	out := rewriteOutput{Result: res, Mode: mode.String(), Seed: seed}
	if opts.diff {
		out.Diff = humanizer.Diff(input, res.HumanizedText)
	}

	w := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, res.HumanizedText)
	if opts.edits {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "edits (%d):\n", len(res.Replacements))
		for _, e := range res.Replacements {
			fmt.Fprintf(w, "  @%d %q -> %q\n", e.Position, e.Original, e.Humanized)
		}
	}
	if opts.diff {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "diff (%d):\n", len(out.Diff))
		for _, e := range out.Diff {
			fmt.Fprintf(w, "@@ %d\n", e.Position)
			if e.Original != "" {
				fmt.Fprintf(w, "- %s\n", e.Original)
			}
			if e.Humanized != "" {
				fmt.Fprintf(w, "+ %s\n", e.Humanized)
			}
		}
	}
	return nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(raw), nil
}
