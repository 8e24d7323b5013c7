// main is the entry point for the lineup CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/lineup/cmd"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/iocache"
)

// main wires the global store manager into the commands and runs them.
func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()

	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Warning:", perr)
	}
	contract.CloseLogging()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
