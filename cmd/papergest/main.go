package main

import (
	"encoding/json"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Every failure mode collapses to the same JSON envelope on stdout.
		json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
		os.Exit(1)
	}
}
