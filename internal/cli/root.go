// Package cli is the offline front end to the rewriter. It shares the
// layered configuration of the API server but needs no database.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/humanizer-backend/internal/humanizer"
	"github.com/yungbote/humanizer-backend/internal/humanizer/tuning"
	"github.com/yungbote/humanizer-backend/internal/platform/envutil"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type rootOptions struct {
	configPath string
	verbose    bool
	log        *logger.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{log: logger.Nop()}

	root := &cobra.Command{
		Use:           "humanize",
		Short:         "Rewrite formal prose into a conversational register",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			log, err := logger.New("development")
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML file with rewriter settings (also HUMANIZER_CONFIG)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	tuning.RegisterFlags(pf)

	root.AddCommand(newRewriteCmd(opts), newConfigCmd(opts))
	return root
}

// loadConfig resolves the effective rewriter settings for cmd, including
// any tuning flags changed on the command line.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (humanizer.Config, error) {
	path := o.configPath
	if path == "" {
		path = envutil.String("HUMANIZER_CONFIG", "")
	}
	cfg, err := tuning.Load(path, cmd.Flags())
	if err != nil {
		return humanizer.Config{}, err
	}
	o.log.Debug("rewriter config loaded", "path", path)
	return cfg, nil
}
