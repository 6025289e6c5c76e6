package main

import "github.com/pders01/prochist/cmd"

func main() {
	cmd.Execute()
}
