package main

import "mini-orm/cmd"

func main() {
	cmd.Execute()
}
