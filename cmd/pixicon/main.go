package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/esimov/pixicon"
	"github.com/esimov/pixicon/imop"
	"github.com/esimov/pixicon/utils"
)

const helpBanner = `
┌─┐┬─┐ ┬┬┌─┐┌─┐┌┐┌
├─┘│┌┴┬┘││  │ ││││
┴  ┴┴ └─┴└─┘└─┘┘└┘

Deterministic pixel art icon generator.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	seed      = flag.String("seed", "", "Seed string (leave empty for a random icon)")
	seeds     = flag.String("seeds", "", "File or URL listing one seed per line, `-` for stdin")
	dst       = flag.String("out", pipeName, "Destination file, or directory when -seeds is used")
	cellSize  = flag.Int("cell", pixicon.DefaultCellSize, "Cell size in pixels (2-8 recommended)")
	highRes   = flag.Bool("hires", false, "High resolution (24x64) grid")
	status    = flag.String("status", "", "Status label: blocked, planned, open, in-progress, review")
	palette   = flag.String("palette", "", "YAML or JSON palette file or URL")
	framed    = flag.Bool("frame", false, "Draw the outer border around the icon")
	size      = flag.Int("size", 0, "Resample the exported image to this width")
	tint      = flag.String("tint", "", "Tint color in hex format")
	blendMode = flag.String("blend", imop.Multiply, "Tint blend mode: darken, lighten, multiply, screen, overlay")
	format    = flag.String("format", "png", "Output format when writing to stdout or a directory: png, jpeg, bmp")
	dataURI   = flag.Bool("datauri", false, "Print the PNG data URL instead of writing the image")
	workers   = flag.Int("conc", runtime.NumCPU(), "Number of icons to generate concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	outFormat, err := pixicon.ParseFormat(*format)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	if *tint != "" && !utils.Contains(imop.BlendModes, *blendMode) {
		log.Fatal(utils.DecorateText(fmt.Sprintf("unsupported blend mode: %s", *blendMode), utils.ErrorMessage))
	}

	proc := &pixicon.Processor{
		Seed:      *seed,
		Status:    *status,
		CellSize:  utils.Clamp(*cellSize, 1, 64),
		HighRes:   *highRes,
		Framed:    *framed,
		Size:      *size,
		Tint:      *tint,
		BlendMode: *blendMode,
		Format:    outFormat,
	}

	if *palette != "" {
		pal, err := pixicon.LoadPalettesFile(*palette)
		if err != nil {
			log.Fatalf("%s %s",
				utils.DecorateText("Failed to load the palette:", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		proc.Palettes = pal
	}

	op := &pixicon.Ops{
		Seeds:    *seeds,
		Dst:      *dst,
		PipeName: pipeName,
		Workers:  *workers,
		DataURI:  *dataURI,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatalf("%s %s",
			utils.DecorateText("\nError generating the icon:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}
