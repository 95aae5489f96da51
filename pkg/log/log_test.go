package log

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithDeviceScopesEntry(t *testing.T) {
	entry := WithDevice("10.0.0.1")
	if entry.Data["device"] != "10.0.0.1" {
		t.Errorf("unexpected device field: %v", entry.Data["device"])
	}
}

func TestWithOperationScopesEntry(t *testing.T) {
	entry := WithOperation("10.0.0.1", "reconcile")
	if entry.Data["device"] != "10.0.0.1" {
		t.Errorf("unexpected device field: %v", entry.Data["device"])
	}
	if entry.Data["operation"] != "reconcile" {
		t.Errorf("unexpected operation field: %v", entry.Data["operation"])
	}
}

func TestSetDebugTogglesLevel(t *testing.T) {
	defer SetDebug(false)

	SetDebug(true)
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		t.Error("debug level not enabled")
	}
	SetDebug(false)
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		t.Error("debug level still enabled")
	}
}
