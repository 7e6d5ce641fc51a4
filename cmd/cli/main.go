package main

import "os"

func main() {
	// Cobra prints the error; the review command adds the friendly description.
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
