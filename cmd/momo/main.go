package main

import "github.com/TKcodes-bit/Momo-app-code-bit/cmd/momo/commands"

func main() {
	commands.Execute()
}
