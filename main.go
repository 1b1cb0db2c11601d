package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/use-splitter/pkg/cmd"
)

func main() {
	var v string
	if info, ok := debug.ReadBuildInfo(); ok {
		v = info.Main.Version
	}
	if err := cmd.Execute(v); err != nil {
		os.Exit(1)
	}
}
