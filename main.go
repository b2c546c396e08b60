package main

import (
	"github.com/jwhitmore/colorcw/cmd"
	"github.com/jwhitmore/colorcw/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
