// Command letpl is the compiler and runtime for the letpl programming
// language.
package main

import (
	"os"

	"github.com/mna/letpl/internal/maincmd"
	"github.com/mna/mainer"
)

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	c := maincmd.Cmd{BuildVersion: buildVersion, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args[1:], mainer.CurrentStdio())))
}
