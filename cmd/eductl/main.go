package main

import "eduresource-api/cmd/eductl/commands"

func main() {
	commands.Execute()
}
