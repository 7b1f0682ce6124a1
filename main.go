package main

import "seedfix/cmd"

func main() {
	cmd.Execute()
}
