/*
Package pixicon is a deterministic, seed driven pixel art icon generator.
The same seed always produces the same symmetric, five band glyph, which makes
it suitable as a visual identifier of tickets, contributors or personas.

The generation pipeline hashes the seed, feeds the hash into a seeded sequence,
builds a half-width bitmap out of it, groups the adjacent cells of every band with
a flood fill, colors every group from the band palette and finally rasterizes the
mirrored bitmap. The palette only affects colors, never the geometry.

The package provides a command line interface, supporting various flags.
To check the supported commands type:

	$ pixicon --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/pixicon"
	)

	func main() {
		p := &pixicon.Processor{
			Seed:     "john@example.com",
			Status:   pixicon.StatusReview,
			CellSize: 8,
		}

		if err := p.Process(os.Stdout); err != nil {
			fmt.Printf("Error generating the icon: %s", err.Error())
		}
	}
*/
package pixicon
