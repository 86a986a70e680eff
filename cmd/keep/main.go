package main

import "keep/cmd/keep/cmd"

func main() {
	cmd.Execute()
}
