// Command smarttrace condenses Go panic output read from a file or from the
// standard input:
//
//	go run ./app 2>&1 | smarttrace --root example.com/app --ignore runtime
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
