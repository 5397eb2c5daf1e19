// Command daprprops shows how the Dapr SDK configuration properties resolve
// for the current process: which value each property takes and whether it
// came from an override, a process property, the environment or the default.
//
//	daprprops -f dapr.yaml -D dapr.http.port=4000 list
//	daprprops --secrets-dir /run/secrets get DAPR_API_TOKEN
package main

import (
	"fmt"
	"os"
)

// Version information set during build
var (
	version = "dev"
)

func main() {
	if err := newApp().rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
