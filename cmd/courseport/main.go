package main

import "github.com/opencourse/courseport/cmd"

func main() {
	cmd.Execute()
}
