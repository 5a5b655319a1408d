package main

import "royalty-core/cmd/royalty-cli/cmd"

func main() {
	cmd.Execute()
}
