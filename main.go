// main is the entry point for the presetter CLI.
package main

import (
	"github.com/huangsam/presetter/cmd"
	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/internal/history"
)

func main() {
	err := cmd.Execute()
	history.CloseHistory()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("presetter failed", err)
	}
}
