package main

import "github.com/dmarins/paslint/internal/cli"

func main() {
	cli.Execute()
}
