package main

import "github.com/stembase/mading/cmd/mading/commands"

func main() {
	commands.Execute()
}
