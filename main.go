package main

import "github.com/pybundle/pybundle/cmd"

func main() {
	cmd.Execute()
}
