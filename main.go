package main

import "flowcast/cmd"

func main() {
	cmd.Execute()
}
