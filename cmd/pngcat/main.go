// Command pngcat decodes a PNG file and prints its header and metadata.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	png "github.com/coreimg/png"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}
	defaultPath := filepath.Join(home, "Pictures", "smiley.png")

	var path string
	var dump bool
	flag.StringVar(&path, "png", defaultPath, "png file to decode")
	flag.BoolVar(&dump, "dump", false, "print every decoded pixel as RGBA8, one per line")
	flag.Parse()

	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	logger := log.New(os.Stderr, "pngcat: ", 0)
	img, err := png.Decode(f, png.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %dx%d, depth=%d channels=%d color=%v alpha=%v indexed=%v\n",
		path, img.Width, img.Height,
		img.Format.Pixel.Depth, img.Format.Pixel.Channels,
		img.Format.Pixel.HasColor, img.Format.Pixel.HasAlpha, img.Format.Pixel.Indexed)

	if img.Format.Palette != nil {
		fmt.Printf("palette: %d entries\n", len(img.Format.Palette))
	}
	if m := img.Metadata; m != nil {
		if m.Gamma != nil {
			fmt.Printf("gamma: %d/100000\n", *m.Gamma)
		}
		if m.Physical != nil {
			fmt.Printf("physical: %dx%d ppu, meter=%v\n", m.Physical.PixelsPerUnitX, m.Physical.PixelsPerUnitY, m.Physical.UnitIsMeter)
		}
		for _, t := range m.Text {
			fmt.Printf("text[%s]: %d bytes (compressed=%v)\n", t.Keyword, len(t.Text), t.Compressed)
		}
		for name, chunks := range m.Unknown {
			fmt.Printf("unrecognized chunk %q seen %d time(s)\n", name, len(chunks))
		}
	}

	if !dump {
		return
	}
	pixels, err := img.UnpackRGBA8()
	if err != nil {
		log.Fatal(err)
	}
	for _, px := range pixels {
		fmt.Println(px)
	}
}
