package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/placeholder/internal/client/cli"
)

func main() {

	cmd := cli.NewRootCmd(os.Stdin, os.Stdout)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

}
