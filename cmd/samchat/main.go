// Command samchat runs the grounded support-chat service.
package main

import (
	"github.com/custodia-labs/samchat/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
