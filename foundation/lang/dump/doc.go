// Package dump renders quill syntax trees for humans and tools.
//
// Package: dump
// Title: Quill Tree Dump
// Description: Indented text, YAML and JSON renderings of a parsed tree,
//              optionally annotated with positions and back-references.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Text output for "x :: 1 + 2;":
//
//	File main.ql
//	  Scope
//	    Declaration x const
//	      value: Binary +
//	        left: Literal 1
//	        right: Literal 2
package dump
