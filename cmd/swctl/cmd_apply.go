package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrail/swctl/application/services"
	"github.com/openrail/swctl/infrastructure/transport"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile declared VLAN state (dry run unless -x)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer transport.CloseAll()

			devices, err := selectDevices(cfg)
			if err != nil {
				return err
			}

			failed := 0
			for _, dev := range devices {
				fmt.Printf("Reconciling %s\n", dev.Target)
				app, err := services.NewVlanApplicationService(dev)
				if err != nil {
					fmt.Printf("  %s: %v\n", dev.Target, err)
					failed++
					continue
				}
				if err := app.Reconcile(); err != nil {
					fmt.Printf("  %s: %v\n", dev.Target, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d devices failed", failed, len(devices))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "apply changes (disables sandbox mode)")
	return cmd
}
