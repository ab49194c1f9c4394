package main

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestNormalizeFlagAliases(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	if got := normalizeFlagAliases(fs, "desc"); got != "description" {
		t.Errorf("desc normalized to %q", got)
	}
	if got := normalizeFlagAliases(fs, "title"); got != "title" {
		t.Errorf("title normalized to %q", got)
	}
}
