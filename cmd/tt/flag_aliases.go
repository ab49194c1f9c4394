package main

import "github.com/spf13/pflag"

// flagAliases maps shorthand flag spellings to their canonical names.
var flagAliases = map[string]string{
	"desc": "description",
}

func normalizeFlagAliases(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagAliases)
}
