package main

import (
	"fmt"
	"os"

	"github.com/yungbote/humanizer-backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "humanize: %v\n", err)
		os.Exit(1)
	}
}
