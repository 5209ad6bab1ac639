package main

import "github.com/surveyscope/surveyscope-cli/cmd"

func main() {
	cmd.Execute()
}
