package main

import "testing"

func TestRunVersionCommand(t *testing.T) {
	if code := run([]string{"version"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if code := run([]string{"unknown-command"}); code != 2 {
		t.Fatalf("expected usage exit code 2 for unknown command, got %d", code)
	}
}

func TestRunInvalidID(t *testing.T) {
	t.Setenv("XETHER_CONFIG", t.TempDir()+"/config.json")
	if code := run([]string{"team", "info", "abc"}); code != 2 {
		t.Fatalf("expected validation exit code 2, got %d", code)
	}
}
