/*
Package canopy validates and coerces loosely typed data against small declarative schemas.

A schema is described with ordinary Go values: mappings for objects, functions
for transforms, slices for pipelines and nil for "anything". New turns such a
description into a Root, and Root parses data into a conformant value plus a
list of path-tagged errors.

# Concept

Canopy never stops at the first problem. Every combinator returns the value it
could produce together with all the errors it saw, so one call reports every
invalid field of a document:

  - Object narrows a mapping to its declared keys and drops the rest.
  - List parses each element of a sequence.
  - And threads a value through stages (coerce, then check).
  - Or returns the first alternative that succeeds.
  - Transform converts a value; Predicate gates it without changing it.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/canopy"
		"github.com/aretw0/canopy/pkg/schema"
	)

	func main() {
		root, err := canopy.New(map[string]any{
			"name":    schema.String(),
			"retries": schema.Seq{schema.Int(), schema.Positive()},
		})
		if err != nil {
			log.Fatal(err) // malformed schema description
		}

		value, err := root.ParseOrError(map[string]any{"name": "api", "retries": "3"})
		if err != nil {
			for _, e := range schema.ParseErrors(err) {
				fmt.Println(e)
			}
			return
		}
		fmt.Println(value) // map[name:api retries:3]
	}

Parse returns the value and the error slice without ever failing;
ParseOrError is the convenience form that returns a *schema.ParseException.

# Packages

  - pkg/schema: the combinators, normalization and the error model.
  - pkg/registry: named schemas shared by the CLI and the HTTP adapter.
  - pkg/observability: Prometheus metrics fed by Root hooks.
  - pkg/adapters/http: a JSON API over registered schemas.
*/
package canopy
