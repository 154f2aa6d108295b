package main

import "github.com/cmmoran/viewgen/cmd"

func main() {
	cmd.Execute()
}
