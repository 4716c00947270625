package main

import "atc-cli/cmd"

func main() {
	cmd.Execute()
}
