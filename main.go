package main

import "github.com/basintools/basindb/cmd"

func main() {
	cmd.Execute()
}
