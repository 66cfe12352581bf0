package main

import "github.com/oshokin/radar-turret/cmd/radar-turret/cmd"

func main() {
	cmd.Execute()
}
