package main

import (
	"io"
	"strings"
	"testing"
)

func TestImportCmdRequiresBankCodeAndUser(t *testing.T) {
	cmd := newImportCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"12030000"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an argument error with a single argument")
	}
}

func TestPlotCmdRejectsBadDayCount(t *testing.T) {
	cmd := newPlotCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"all", "ninety"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a non-numeric day count")
	}
	if !strings.Contains(err.Error(), "invalid day count") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMigrateCmdRejectsUnknownSubcommand(t *testing.T) {
	cmd := newMigrateCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"sideways"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown subcommand")
	}
}
