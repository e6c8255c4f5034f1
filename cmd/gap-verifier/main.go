/*
The gap-verifier command runs a backend service that only accepts requests signed by the
authenticating proxy in front of it, and provides tools for operating that setup.

Usage:

	gap-verifier [command] [flags]

Commands:

	serve      | Runs the example backend behind Gap-Signature validation
	sign       | Prints the Gap-Signature for a described request
	rejections | Logs rejected requests as they're published to RabbitMQ

Every flag may also be supplied as an environment variable with the GAP_ prefix, e.g.
--secret as GAP_SECRET and --listen-port as GAP_LISTEN_PORT.
*/
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
