// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package csharp

import (
	"bytes"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node types of the tree-sitter C# grammar.
const (
	nodeUsingDirective             = "using_directive"
	nodeNamespaceDeclaration       = "namespace_declaration"
	nodeFileScopedNamespace        = "file_scoped_namespace_declaration"
	nodeDeclarationList            = "declaration_list"
	nodeMethodDeclaration          = "method_declaration"
	nodeIndexerDeclaration         = "indexer_declaration"
	nodeExplicitInterfaceSpecifier = "explicit_interface_specifier"
	nodeParameterList              = "parameter_list"
	nodeBracketedParameterList     = "bracketed_parameter_list"
	nodeParameter                  = "parameter"
	nodeParameterArray             = "parameter_array"
	nodeParameterModifier          = "parameter_modifier"
	nodeModifier                   = "modifier"
	nodeEqualsValueClause          = "equals_value_clause"
	nodeAttributeList              = "attribute_list"
	nodeAttribute                  = "attribute"
	nodeTypeParameterList          = "type_parameter_list"
	nodeTypeParameter              = "type_parameter"
	nodeIdentifier                 = "identifier"
	nodeComment                    = "comment"
	nodeError                      = "ERROR"
)

// Field names of the tree-sitter C# grammar.
const (
	fieldName           = "name"
	fieldType           = "type"
	fieldBody           = "body"
	fieldParameters     = "parameters"
	fieldTypeParameters = "type_parameters"
)

// typeDeclarations are the node types declaring types with members.
var typeDeclarations = map[string]bool{
	"class_declaration":         true,
	"struct_declaration":        true,
	"interface_declaration":     true,
	"record_declaration":        true,
	"record_struct_declaration": true,
}

// fieldOrChild returns the child in field, falling back to the first named child of type nodeType.
func fieldOrChild(n *sitter.Node, field, nodeType string) *sitter.Node {
	if c := n.ChildByFieldName(field); c != nil {
		return c
	}

	return childOfType(n, nodeType)
}

// childOfType returns the first named child of type nodeType.
func childOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := range int(n.NamedChildCount()) {
		if c := n.NamedChild(i); c.Type() == nodeType {
			return c
		}
	}

	return nil
}

// SourceExt is the extension of C# source files.
const SourceExt = ".cs"

// IsSource reports whether filename names a C# source file.
func IsSource(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), SourceExt)
}

// generatedSuffixes are file name suffixes of generated C# code.
var generatedSuffixes = [...]string{".designer.cs", ".generated.cs", ".g.cs", ".g.i.cs"}

// IsGenerated reports whether a C# file contains generated code,
// either by naming convention or by an <auto-generated> header comment.
func IsGenerated(filename string, src []byte) bool {
	base := strings.ToLower(filepath.Base(filename))
	if strings.HasPrefix(base, "temporarygeneratedfile_") {
		return true
	}

	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	return hasGeneratedHeader(src)
}

// hasGeneratedHeader scans the leading comments of src for an auto-generated marker.
func hasGeneratedHeader(src []byte) bool {
	for {
		src = bytes.TrimLeft(src, " \t\r\n\uFEFF")

		var comment []byte

		switch {
		case bytes.HasPrefix(src, []byte("//")):
			line, rest, _ := bytes.Cut(src, []byte("\n"))
			comment, src = line, rest

		case bytes.HasPrefix(src, []byte("/*")):
			block, rest, ok := bytes.Cut(src[2:], []byte("*/"))
			if !ok {
				return false
			}

			comment, src = block, rest

		default:
			return false
		}

		lower := bytes.ToLower(comment)
		if bytes.Contains(lower, []byte("<auto-generated")) || bytes.Contains(lower, []byte("<autogenerated")) {
			return true
		}
	}
}
