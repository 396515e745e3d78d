// labctl - Command-line interface for provisioning and validating
// Harness workshop labs.
package main

import "github.com/jtitra/labkit/pkg/cli"

func main() {
	cli.Execute()
}
