// Package glasscan provides the command-line interface for the Glasscan
// tool. It configures subcommands (scan, report, detectors, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/glasscan/glasscan/cmd/glasscan"
//	func main() { glasscan.Execute() }
package glasscan
