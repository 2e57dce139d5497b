package platform

import "testing"

func TestComputerName(t *testing.T) {
	if ComputerName() == "" {
		t.Error("ComputerName() should not be empty")
	}
}

func TestUsername_EnvFallback(t *testing.T) {
	t.Setenv("USER", "sysinfo-test")
	if Username() == "" {
		t.Error("Username() should not be empty when USER is set")
	}
}
