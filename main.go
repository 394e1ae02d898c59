package main

import "github.com/moyu-x/dupscan/cmd"

func main() {
	cmd.Execute()
}
