package main

import (
	"fmt"
	"os"

	"mat/internal/cli"
	"mat/internal/errs"
	"mat/internal/util/logx"
)

func main() {
	logx.SetLevelFromEnv()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mat: %v\n", err)
		os.Exit(errs.ExitCode(err))
	}
}
