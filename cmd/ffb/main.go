// Command ffb is the fleet management CLI.
package main

import "github.com/mgufindo/ffb-swt/internal/cli"

func main() {
	cli.Execute()
}
