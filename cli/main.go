package main

import "shotrewards/cli/cmd"

func main() {
	cmd.Execute()
}
