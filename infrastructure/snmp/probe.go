package snmp

import (
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/openrail/swctl/pkg/log"
)

const (
	oidSysDescr = ".1.3.6.1.2.1.1.1.0"
	oidSysName  = ".1.3.6.1.2.1.1.5.0"

	probeTimeout = 5 * time.Second
	probeRetries = 1
)

// Probe reads switch identity over SNMP so platform detection can happen
// without opening a CLI session.
type Probe struct {
	Community string
}

// NewProbe creates a probe bound to an SNMPv2c community.
func NewProbe(community string) *Probe {
	return &Probe{Community: community}
}

// SysDescr returns the device's system description.
func (p *Probe) SysDescr(target string) (string, error) {
	values, err := p.get(target, []string{oidSysDescr})
	if err != nil {
		return "", err
	}
	return values[oidSysDescr], nil
}

// Identity returns the device's system description and configured name.
func (p *Probe) Identity(target string) (sysDescr, sysName string, err error) {
	values, err := p.get(target, []string{oidSysDescr, oidSysName})
	if err != nil {
		return "", "", err
	}
	return values[oidSysDescr], values[oidSysName], nil
}

func (p *Probe) get(target string, oids []string) (map[string]string, error) {
	client := &gosnmp.GoSNMP{
		Target:    target,
		Port:      161,
		Community: p.Community,
		Version:   gosnmp.Version2c,
		Timeout:   probeTimeout,
		Retries:   probeRetries,
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s via SNMP: %v", target, err)
	}
	defer client.Conn.Close()

	result, err := client.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("SNMP GET failed for %s: %v", target, err)
	}

	values := make(map[string]string, len(result.Variables))
	for _, v := range result.Variables {
		text := decodeOctetString(v)
		if text == "" {
			continue
		}
		values[v.Name] = text
		log.WithDevice(target).Debugf("SNMP %s = %q", v.Name, text)
	}
	return values, nil
}

func decodeOctetString(pdu gosnmp.SnmpPDU) string {
	if pdu.Type != gosnmp.OctetString {
		return ""
	}
	if bytes, ok := pdu.Value.([]byte); ok {
		return string(bytes)
	}
	if s, ok := pdu.Value.(string); ok {
		return s
	}
	return ""
}
