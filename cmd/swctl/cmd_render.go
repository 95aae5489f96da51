package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrail/swctl/application/services"
	"github.com/openrail/swctl/infrastructure/transport"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the declared VLAN configuration as CLI commands",
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

			for _, dev := range devices {
				app, err := services.NewVlanApplicationService(dev)
				if err != nil {
					return err
				}
				commands, err := app.RenderPlan()
				if err != nil {
					return err
				}
				fmt.Printf("# %s (%s)\n", dev.Target, app.Platform())
				if len(commands) == 0 {
					fmt.Println("# no changes required")
					continue
				}
				for _, c := range commands {
					fmt.Println(c)
				}
			}
			return nil
		},
	}
}
