package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newViper returns a config registry in which every key can be supplied from the
// environment as GAP_<KEY>, with dashes replaced by underscores
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("gap")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd() *cobra.Command {
	v := newViper()
	root := &cobra.Command{
		Use:          "gap-verifier",
		Short:        "Validates requests signed by an authenticating proxy",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "info", "minimum level of log messages to write (debug|info|warn|error)")
	must(v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level")))

	root.AddCommand(newServeCmd(v))
	root.AddCommand(newSignCmd(v))
	root.AddCommand(newRejectionsCmd(v))
	return root
}

// bindFlags binds the flags of the command being run, so that flags shared by several
// commands (e.g. --secret) resolve against the command that was actually invoked
func bindFlags(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return v.BindPFlags(cmd.Flags())
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
