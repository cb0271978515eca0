//go:build mage

package main

import "github.com/magefile/mage/mg"

// goArgs adds -v when mage runs verbose.
func goArgs(cmd string, args ...string) []string {
	out := []string{cmd}
	if mg.Verbose() {
		out = append(out, "-v")
	}
	return append(out, args...)
}
