package lantech

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openrail/swctl/domain/entities"
)

var (
	vlanRowRegex = regexp.MustCompile(`^(\d{1,4})\s*(\S.*)?$`)
	nameRegex    = regexp.MustCompile(`(?m)^Name\s+(.+)$`)
	macRegex     = regexp.MustCompile(`(?im)^MAC Address\s+(\S+)`)
	versionRegex = regexp.MustCompile(`(?im)^Firmware Version\s+(\S+)`)
)

// parseVlanTable reads the static VLAN table:
//
//	VLAN ID  Name
//	-------  ----------------
//	1        default
//	5        test-vlan5
func parseVlanTable(output string) []entities.VlanSpec {
	var specs []entities.VlanSpec
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "VLAN") {
			continue
		}
		match := vlanRowRegex.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		specs = append(specs, entities.VlanSpec{ID: id, Name: strings.TrimSpace(match[2])})
	}
	return specs
}

// parseSystemConfiguration scrapes the "System Configuration" screen
func parseSystemConfiguration(output string) *entities.SystemInfo {
	info := &entities.SystemInfo{Vendor: driverName}
	if m := nameRegex.FindStringSubmatch(output); m != nil {
		info.Hostname = strings.TrimSpace(m[1])
	}
	if m := macRegex.FindStringSubmatch(output); m != nil {
		info.ManagementMAC = m[1]
	}
	if m := versionRegex.FindStringSubmatch(output); m != nil {
		info.OSVersion = m[1]
	}
	return info
}
