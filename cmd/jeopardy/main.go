package main

import "github.com/mcoot/jeopardy-go2/internal/cli"

func main() {
	cli.Execute()
}
