// Command scatterctl drives a scatter stage from the command line: replay
// gesture scripts headlessly, serve a stage to websocket clients, or open
// an interactive window.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
