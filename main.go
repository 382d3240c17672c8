package main

import "rank-tracker/cmd"

func main() {
	cmd.Execute()
}
