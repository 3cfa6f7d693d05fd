// Command dramconsole runs the DRAM diagnostic console against a simulated
// test block.
package main

import "github.com/tr-rocks/litex/dramconsole/cmd"

func main() {
	cmd.Execute()
}
