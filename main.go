package main

import "github.com/lexiconlab/readers/cmd"

func main() {
	cmd.Execute()
}
