package main

import "github.com/rpgo/estate-calculator/cmd"

func main() {
	cmd.Execute()
}
