package main

import (
	"os"

	"github.com/declare-cloud/releasenotes/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
