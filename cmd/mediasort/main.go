package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mediasort/internal/faults"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "mediasort: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode separates misuse (missing inputs, reserved paths, bad
// configuration) from runtime failures so scripts can tell them apart.
func exitCode(err error) int {
	if faults.Fatal(err) {
		return 2
	}
	return 1
}
