package main

import "logscope/internal/cmd"

func main() {
	cmd.Execute()
}
