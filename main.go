// Package main is the entry point for the fhirfuzz CLI.
package main

import "fhirfuzz.dev/pkg/fhirfuzz/cmd"

func main() {
	cmd.Execute()
}
