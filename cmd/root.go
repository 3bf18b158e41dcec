package cmd

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/cmd/backends"
	"github.com/ValentinKolb/hostlink/cmd/call"
	"github.com/ValentinKolb/hostlink/cmd/perf"
	"github.com/ValentinKolb/hostlink/cmd/serve"
	"github.com/ValentinKolb/hostlink/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "hostlink",
		Short: "guest-to-host request/reply link",
		Long: fmt.Sprintf(`hostlink (v%s)

A client for the framed request/reply protocol spoken between a virtual
machine and its host, with pluggable transport backends.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hostlink",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hostlink v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(call.CallCmd)
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(backends.BackendsCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("Log level (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
