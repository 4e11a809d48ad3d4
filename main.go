package main

import "github.com/ndrsllwngr/goscript/cmd"

func main() {
	cmd.Execute()
}
