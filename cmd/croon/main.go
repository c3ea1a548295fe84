package main

import "github.com/stronk-dev/croon/internal/cli"

func main() {
	cli.Execute()
}
