package main

import (
	"context"
	"errors"
	"os"

	"github.com/k-fujiwara/pbrimport/pkg/cli"
	"github.com/k-fujiwara/pbrimport/pkg/domain/types"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, types.ErrPartialImport) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
