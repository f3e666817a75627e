package main

import "mocap-player/internal/cli"

func main() {
	cli.Execute()
}
