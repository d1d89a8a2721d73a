// Command fortimon evaluates FortiGate system identity and firmware update
// sections, either as a stdin/stdout plugin or as an HTTP check server.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
