// unitylog - Unity build-log issue scanner
//
// unitylog matches Unity package build and runtime logs against a library
// of pattern rules and reports the issues it finds, ranked and grouped.
package main

import (
	"os"

	"github.com/zhaowenlong-t4f/UnityPackageLogAnalysis/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
