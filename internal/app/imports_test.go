// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/relabs-tech/env_station"

// Packages that need a Linux host and do not link on the RP2040.
var hostOnly = []string{
	"periph.io/x/host/",
	"periph.io/x/devices/",
	"periph.io/x/conn/",
	"github.com/warthog618/go-gpiocdev",
	"golang.org/x/sys/",
}

func TestFirmwareImportsStayOffHostPackages(t *testing.T) {
	ctx := build.Default
	ctx.GOOS = "linux"
	ctx.GOARCH = "arm"
	ctx.BuildTags = []string{"tinygo", "baremetal"}

	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("module root: %v", err)
	}

	seen := map[string]bool{}
	var visit func(rel string)
	visit = func(rel string) {
		if seen[rel] {
			return
		}
		seen[rel] = true
		pkg, err := ctx.ImportDir(filepath.Join(root, rel), 0)
		if err != nil {
			t.Fatalf("reading %s: %v", rel, err)
		}
		for _, imp := range pkg.Imports {
			if strings.HasPrefix(imp, modulePath+"/") {
				visit(strings.TrimPrefix(imp, modulePath+"/"))
				continue
			}
			for _, bad := range hostOnly {
				if strings.HasPrefix(imp, bad) {
					t.Errorf("%s imports %s", rel, imp)
				}
			}
		}
	}
	visit("cmd/firmware")

	if !seen["internal/app"] || !seen["internal/display"] {
		t.Fatalf("firmware closure %v misses the shared loop packages", seen)
	}
}
