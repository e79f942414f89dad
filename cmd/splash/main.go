package main

import (
	"os"
)

func main() {
	// Panic Recovery: restore the terminal even if the scene crashes
	defer recoverCrash("SPLASH CRASHED")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
