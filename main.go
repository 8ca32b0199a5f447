package main

import (
	"fmt"
	"os"

	"clickchess/ui"
)

func main() {
	if err := ui.RunClickChess(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
