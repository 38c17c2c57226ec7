package main

import "quillblog/commands"

func main() {
	commands.Execute()
}
