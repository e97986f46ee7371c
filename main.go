package main

import "github.com/jollyroger/weekly-summary/cmd"

func main() {
	cmd.Execute()
}
