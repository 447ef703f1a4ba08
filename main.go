package main

import "github.com/encodeous/dsdv/cmd"

func main() {
	cmd.Execute()
}
