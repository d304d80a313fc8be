package main

import (
	"os"

	"toastd/internal/toastctl"
)

func main() {
	os.Exit(toastctl.MainWithArgs(os.Args[1:]))
}
