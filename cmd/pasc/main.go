// Command pasc is the CLI entry point for the interpreter.
package main

import "github.com/cwbudde/pasc/cmd/pasc/cmd"

func main() {
	cmd.Execute()
}
