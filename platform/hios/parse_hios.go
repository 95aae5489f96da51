package hios

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/openrail/swctl/domain/entities"
)

var (
	vlanDatabaseRegex = regexp.MustCompile(`(?ms)^\s*vlan database\s*$(.*?)^\s*exit\s*$`)
	vlanAddRegex      = regexp.MustCompile(`vlan add (\d+)`)
	vlanNameRegex     = regexp.MustCompile(`name (\d+)[ \t]+([^\r\n]+)`)
	slotRegex         = regexp.MustCompile(`Slot:\s*(\d+)`)
	chassisMacRegex   = regexp.MustCompile(`([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`)
	ipv4Regex         = regexp.MustCompile(`(\d+\.\d+\.\d+\.\d+)`)

	systemInfoPatterns = map[string]*regexp.Regexp{
		"description":    regexp.MustCompile(`(?i)System Description\.+(.+)`),
		"hostname":       regexp.MustCompile(`(?i)System name\.+(.+)`),
		"os_version":     regexp.MustCompile(`(?i)Firmware software release \(RAM\)\.+(.+)`),
		"serial_number":  regexp.MustCompile(`(?i)Serial number\.+(.+)`),
		"management_ip":  regexp.MustCompile(`(?i)IP address \(management\)\.+(.+)`),
		"management_mac": regexp.MustCompile(`(?i)MAC address \(management\)\.+(.+)`),
		"model":          regexp.MustCompile(`(?i)Device hardware description\.+(.+)`),
	}
)

// parseVlanDatabase extracts VLAN specs from the vlan database blocks of a
// "show running-config script" dump:
//
//	vlan database
//	vlan add 2
//	vlan add 8
//	name 1 Management
//	name 2 NWM
//	exit
func parseVlanDatabase(output string) []entities.VlanSpec {
	var specs []entities.VlanSpec
	for _, match := range vlanDatabaseRegex.FindAllStringSubmatch(output, -1) {
		block := match[1]
		names := make(map[int]string)
		for _, nm := range vlanNameRegex.FindAllStringSubmatch(block, -1) {
			if id, err := strconv.Atoi(nm[1]); err == nil {
				names[id] = strings.TrimSpace(nm[2])
			}
		}
		for _, add := range vlanAddRegex.FindAllStringSubmatch(block, -1) {
			id, err := strconv.Atoi(add[1])
			if err != nil {
				continue
			}
			specs = append(specs, entities.VlanSpec{ID: id, Name: names[id]})
		}
	}
	return specs
}

// parseMembershipMatrix turns the "show vlan member current" table into
// interface bindings. The table keys membership by 1-based port digit
// columns:
//
//	VLAN Port membership
//	    Slot: 1
//	VLAN ID  Port: 1234567890123456789012345678
//	-------  ----- ----------------------------
//	      1        UUUUUUUUUUUUUUUUUUUUUUUUUUUU
//	      2        -T-T-----------------------T
//
// T means tagged, U untagged, F forbidden and - not a member.
func parseMembershipMatrix(output string) ([]entities.InterfaceVlanBinding, error) {
	lines := strings.Split(output, "\n")

	slot := ""
	headerIdx := -1
	var portCount int
	for i, line := range lines {
		if m := slotRegex.FindStringSubmatch(line); m != nil {
			slot = m[1]
		}
		if strings.Contains(line, "Port:") && strings.Contains(line, "VLAN ID") {
			colon := strings.Index(line, ":")
			portCount = len(strings.TrimSpace(line[colon+1:]))
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, fmt.Errorf("could not find port header in membership table")
	}
	if portCount == 0 {
		return nil, fmt.Errorf("malformed port header line")
	}

	var bindings []entities.InterfaceVlanBinding
	for _, line := range lines[headerIdx+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !isDigit(trimmed[0]) {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		vlanID, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		membership := fields[len(fields)-1]
		for idx, status := range membership {
			if idx >= portCount {
				break
			}
			var mode entities.TaggingMode
			switch status {
			case 'T':
				mode = entities.Tagged
			case 'U':
				mode = entities.Untagged
			default:
				continue
			}
			bindings = append(bindings, entities.InterfaceVlanBinding{
				Interface: portName(slot, idx+1),
				VlanID:    vlanID,
				Mode:      mode,
			})
		}
	}
	return bindings, nil
}

// parseSystemInfo scrapes the dotted key/value pairs of "show system info"
func parseSystemInfo(output string) *entities.SystemInfo {
	info := &entities.SystemInfo{Vendor: driverName}
	extract := func(key string) string {
		if m := systemInfoPatterns[key].FindStringSubmatch(output); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}
	info.Description = extract("description")
	info.Hostname = extract("hostname")
	info.OSVersion = extract("os_version")
	info.SerialNumber = extract("serial_number")
	info.ManagementIP = extract("management_ip")
	info.ManagementMAC = extract("management_mac")
	info.Model = extract("model")
	if info.Model == "" {
		for _, family := range []string{"BOBCAT", "BXP"} {
			if strings.Contains(info.Description, family) {
				info.Model = family
				break
			}
		}
	}
	return info
}

// parseLLDPRemoteData extracts neighbors from "show lldp remote-data".
// Entries are separated by "Remote data," headers.
func parseLLDPRemoteData(output string) []entities.NeighborInfo {
	var neighbors []entities.NeighborInfo
	current := entities.NeighborInfo{}
	flush := func() {
		if current.IP != "" || current.MAC != "" {
			neighbors = append(neighbors, current)
		}
		current = entities.NeighborInfo{}
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Remote data,"):
			flush()
		case strings.Contains(line, "IPv4 Management address"):
			if m := ipv4Regex.FindString(line); m != "" {
				current.IP = m
			}
		case strings.Contains(line, "Chassis ID"):
			if m := chassisMacRegex.FindString(line); m != "" {
				current.MAC = m
			}
		case strings.Contains(line, "System description"):
			current.Platform = platformFromDescription(line)
		}
	}
	flush()
	return neighbors
}

func platformFromDescription(line string) string {
	lower := strings.ToLower(line)
	for _, vendor := range []string{"hirschmann", "lantech", "kontron", "nomad"} {
		if strings.Contains(lower, vendor) {
			return vendor
		}
	}
	return "unknown"
}

func portName(slot string, port int) string {
	if slot == "" {
		return strconv.Itoa(port)
	}
	return fmt.Sprintf("%s/%d", slot, port)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
