package main

import "github.com/ygelfand/mpvctl/cmd"

func main() {
	cmd.Execute()
}
