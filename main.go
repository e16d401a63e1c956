package main

import (
	"github.com/billaged/billaged/cmd"
)

func main() {
	cmd.Execute()
}
