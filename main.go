package main

import (
	"github.com/ValentinKolb/hostlink/cmd"
)

func main() {
	cmd.Execute()
}
