// swctl — declarative VLAN management for rail-side switch networks
//
// swctl reads a YAML inventory of switches and their declared VLAN state
// and reconciles each device over telnet or SSH. Runs are dry by default;
// -x applies the computed changes.
//
// Usage:
//
//	swctl apply -t <target>       Reconcile declared VLANs (dry run)
//	swctl apply -t <target> -x    Reconcile and apply changes
//	swctl render -t <target>      Render declared VLANs as CLI commands
//	swctl facts -t <target>       Show observed VLANs and memberships
//	swctl discover                Walk LLDP adjacencies from the inventory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openrail/swctl/pkg/log"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cfgFile string
	target  string
	execute bool
	verbose bool
	rawIO   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "swctl",
	Short:             "Declarative VLAN management for managed switches",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `swctl reconciles the VLAN state declared in a YAML inventory against
what each switch reports, and sends only the commands needed to close
the gap. Nothing is written unless -x is given.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetDebug(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&target, "target", "t", "", "limit the run to one device target")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&rawIO, "raw", false, "mirror raw transport I/O to stdout")

	rootCmd.AddCommand(
		newApplyCmd(),
		newRenderCmd(),
		newFactsCmd(),
		newDiscoverCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("swctl %s (built %s)\n", version, buildTime)
		},
	}
}
