package main

import "github.com/mireval/chartbot/cmd"

func main() {
	cmd.Execute()
}
