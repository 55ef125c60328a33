// Command sortrace is the composition root: it wires the core race
// engine to a terminal renderer and a cobra-based CLI, and handles
// everything the core itself stays deliberately ignorant of — argument
// parsing, logging, signals, and timing.
package main

import (
	"os"
)

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
