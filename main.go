package main

import "github.com/chaininsights/blog/cmd"

func main() {
	cmd.Execute()
}
