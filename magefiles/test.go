//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	return sh.RunV("go", goArgs("test", "./...")...)
}

// Runs the unit tests with the race detector and debug assertions.
func (Test) Race() error {
	return sh.RunV("go", goArgs("test", "-race", "-tags", "auxgeom_debug", "./...")...)
}

// Runs the auxgeom tests with 16 bit indices.
func (Test) Index16() error {
	return sh.RunV("go", goArgs("test", "-tags", "auxgeom_index16", "./auxgeom/...")...)
}

// Runs every test variant.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.Race, Test.Index16)
}
