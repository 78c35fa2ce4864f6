package main

import "github.com/paypost/go-paypost/cmd"

func main() {
	cmd.Execute()
}
