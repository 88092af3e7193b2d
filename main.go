package main

import "repoactivity/cmd"

func main() {
	cmd.Execute()
}
