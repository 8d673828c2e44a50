// Copyright 2023 The gmskit Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package gmskit

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

const modulePath = "github.com/gmskit/gmskit"

// TestImports checks two layering rules: no non-test
// package imports "testing", and expr sits below the
// rest of the module.
func TestImports(t *testing.T) {
	out, err := exec.Command("go", "list", "-json", "./...").Output()
	if err != nil {
		t.Fatal(err)
	}
	type goPackage struct {
		ImportPath string   `json:"ImportPath"`
		Imports    []string `json:"Imports"`
	}
	dec := json.NewDecoder(bytes.NewReader(out))
	for {
		var pkg goPackage
		err := dec.Decode(&pkg)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if slices.Contains(pkg.Imports, "testing") {
			t.Errorf("package %s imports \"testing\"", pkg.ImportPath)
		}
		if pkg.ImportPath != modulePath+"/expr" {
			continue
		}
		for _, imp := range pkg.Imports {
			if strings.HasPrefix(imp, modulePath+"/") {
				t.Errorf("package expr imports %s", imp)
			}
		}
	}
}
