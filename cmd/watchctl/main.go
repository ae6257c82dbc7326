// Command watchctl renders the watchful dashboard and alarms described by
// the environment, and applies them through the CloudWatch API.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
