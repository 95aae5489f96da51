package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openrail/swctl/application/services"
	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/infrastructure/transport"
)

func newFactsCmd() *cobra.Command {
	var withSystem bool

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Show observed VLANs and interface memberships",
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

			report := make(map[string]interface{}, len(devices))
			for _, dev := range devices {
				app, err := services.NewVlanApplicationService(dev)
				if err != nil {
					return err
				}
				facts, err := app.Facts()
				if err != nil {
					return err
				}
				entry := struct {
					Platform string               `yaml:"platform"`
					System   *entities.SystemInfo `yaml:"system,omitempty"`
					Facts    *entities.VlanFacts  `yaml:"vlan_facts"`
				}{
					Platform: app.Platform(),
					Facts:    facts,
				}
				if withSystem {
					sysInfo, err := app.SystemInfo()
					if err != nil {
						return err
					}
					entry.System = sysInfo
				}
				report[dev.Target] = entry
			}

			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSystem, "system", false, "include system identity fields")
	return cmd
}
