// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main holds the mage targets of rolodex.
//
//	mage build        compile bin/rolodex
//	mage install      copy the binary to GOPATH/bin
//	mage test:all     run every test
//	mage test:unit    run tests with -short
//	mage test:race    run tests under the race detector
//	mage test:cover   write coverage.out and print the total
//	mage lint         go vet and golangci-lint
//	mage stats        lines of Go per package
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "rolodex"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rolodex"
	versionVar = "github.com/mesh-intelligence/rolodex/internal/cli.Version"
)

// Build compiles the rolodex binary to bin/. The version is taken from
// ROLODEX_VERSION or, failing that, git describe.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := ""
	if v := version(); v != "" {
		ldflags = fmt.Sprintf("-X %s=%s", versionVar, v)
	}
	return sh.RunV(binGo, "build", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

func version() string {
	if v := os.Getenv("ROLODEX_VERSION"); v != "" {
		return v
	}
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v")
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV(binLint, "run", "./...")
}
