package main

import "chroninotes/cmd/chroninotes-cli/cmd"

func main() {
	cmd.Execute()
}
