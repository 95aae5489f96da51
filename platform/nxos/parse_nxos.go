package nxos

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/openrail/swctl/domain/entities"
)

var (
	vlanBriefRegex  = regexp.MustCompile(`^(\d{1,4})\s+(\S+)\s+(active|suspended|act/unsup)\b(.*)$`)
	interfaceRegex  = regexp.MustCompile(`^[A-Za-z]+\d+(?:/\d+){0,2}$`)
	trunkVlansRegex = regexp.MustCompile(`^([A-Za-z]+\d+(?:/\d+){0,2})\s+([\d,\-]+)\s*$`)
	hostnameRegex   = regexp.MustCompile(`(?im)^\s*Device name:\s*(\S+)`)
	versionRegex    = regexp.MustCompile(`(?im)^\s*(?:system|NXOS):?\s+version\s+(\S+)`)
	chassisRegex    = regexp.MustCompile(`(?im)^Chassis id:\s*(\S+)`)
	mgmtAddrRegex   = regexp.MustCompile(`(?im)^Management Address:\s*(\S+)`)
	sysDescrRegex   = regexp.MustCompile(`(?im)^System Description:\s*(.+)$`)
)

// parseVlanBrief reads "show vlan brief" output. The Ports column lists
// access members, reported as untagged bindings.
func parseVlanBrief(output string) ([]entities.VlanSpec, []entities.InterfaceVlanBinding) {
	var specs []entities.VlanSpec
	var bindings []entities.InterfaceVlanBinding
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		match := vlanBriefRegex.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		name := match[2]
		if name == "-" {
			name = ""
		}
		specs = append(specs, entities.VlanSpec{ID: id, Name: name})
		for _, port := range strings.Split(match[4], ",") {
			port = strings.TrimSpace(port)
			if port == "" || !interfaceRegex.MatchString(port) {
				continue
			}
			bindings = append(bindings, entities.InterfaceVlanBinding{
				Interface: port,
				VlanID:    id,
				Mode:      entities.Untagged,
			})
		}
	}
	return specs, bindings
}

// parseTrunkAllowed reads the "Vlans allowed on trunk" section of
// "show interfaces trunk" and reports tagged bindings.
func parseTrunkAllowed(output string) []entities.InterfaceVlanBinding {
	var bindings []entities.InterfaceVlanBinding
	inSection := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "Vlans allowed on trunk") {
			inSection = true
			continue
		}
		if !inSection || trimmed == "" || strings.HasPrefix(trimmed, "-") {
			continue
		}
		match := trunkVlansRegex.FindStringSubmatch(trimmed)
		if match == nil {
			// A non-matching line ends the section.
			inSection = false
			continue
		}
		iface := match[1]
		for _, id := range expandVlanRange(match[2]) {
			bindings = append(bindings, entities.InterfaceVlanBinding{
				Interface: iface,
				VlanID:    id,
				Mode:      entities.Tagged,
			})
		}
	}
	return bindings
}

// expandVlanRange turns "1,5,10-12" into [1 5 10 11 12]
func expandVlanRange(spec string) []int {
	var ids []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(lo)
			end, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil || start > end {
				continue
			}
			for id := start; id <= end; id++ {
				ids = append(ids, id)
			}
			continue
		}
		if id, err := strconv.Atoi(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseShowVersion(output string) *entities.SystemInfo {
	info := &entities.SystemInfo{Vendor: driverName}
	if m := hostnameRegex.FindStringSubmatch(output); m != nil {
		info.Hostname = m[1]
	}
	if m := versionRegex.FindStringSubmatch(output); m != nil {
		info.OSVersion = m[1]
	}
	return info
}

// parseLLDPNeighborsDetail reads "show lldp neighbors detail" entries
func parseLLDPNeighborsDetail(output string) []entities.NeighborInfo {
	var neighbors []entities.NeighborInfo
	for _, chunk := range strings.Split(output, "Chassis id:") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		entry := "Chassis id:" + chunk
		var n entities.NeighborInfo
		if m := chassisRegex.FindStringSubmatch(entry); m != nil {
			n.MAC = m[1]
		}
		if m := mgmtAddrRegex.FindStringSubmatch(entry); m != nil {
			n.IP = m[1]
		}
		if m := sysDescrRegex.FindStringSubmatch(entry); m != nil {
			n.Platform = platformFromDescription(m[1])
		}
		if n.IP != "" || n.MAC != "" {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

func platformFromDescription(descr string) string {
	lower := strings.ToLower(descr)
	switch {
	case strings.Contains(lower, "nexus") || strings.Contains(lower, "nx-os") || strings.Contains(lower, "cisco"):
		return driverName
	case strings.Contains(lower, "hirschmann"):
		return "hirschmann"
	case strings.Contains(lower, "lantech"):
		return "lantech"
	default:
		return "unknown"
	}
}
