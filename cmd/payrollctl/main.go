package main

import "paycalc/internal/cli"

func main() {
	cli.Execute()
}
