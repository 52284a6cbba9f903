package main

import (
	"worldmark/internal/cli"
)

func main() {
	cli.Execute()
}
