package main

import "github.com/tvesterlund/workhours/cmd"

func main() {
	cmd.Execute()
}
