//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Run mg.Namespace

// Runs the headless demo. CAPTURE=<file> records the frames.
func (Run) Demo() error {
	args := []string{"run", "./cmd/auxgeomdemo", "-frames", "120", "-jobs", "4"}
	if path := os.Getenv("CAPTURE"); path != "" {
		args = append(args, "-capture", path)
	}
	fmt.Println("Run demo...")
	return sh.RunV("go", args...)
}
