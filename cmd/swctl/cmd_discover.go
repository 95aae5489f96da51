package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openrail/swctl/application/services"
	"github.com/openrail/swctl/infrastructure/transport"
)

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Walk LLDP adjacencies from the inventory and map the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer transport.CloseAll()

			topology, err := services.NewDiscoveryService(cfg).Discover()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(topology)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
}
