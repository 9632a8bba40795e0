package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/smasonuk/meshboundary"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	outPath := flag.String("o", "", "output file for the boundary mesh (default stdout)")
	mode := flag.String("mode", "", "override the config mode: boundary or subset")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] mesh.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(log, *configPath, *mode, *verbose, flag.Arg(0), *outPath); err != nil {
		log.Fatal(err)
	}
}

func run(log *logrus.Logger, configPath, mode string, verbose bool, meshPath, outPath string) error {
	cfg := meshboundary.DefaultConfig()
	if configPath != "" {
		loaded, err := meshboundary.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if mode != "" {
		cfg.Mode = meshboundary.Mode(mode)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	cfg.Logger = log

	filter, err := meshboundary.NewBoundaryFilter(cfg)
	if err != nil {
		return err
	}

	grid, err := meshboundary.LoadMesh(meshPath)
	if err != nil {
		return err
	}

	boundary, summary := filter.Execute(grid)

	log.WithFields(logrus.Fields{
		"mesh":         meshPath,
		"points":       humanize.Comma(int64(grid.NumberOfPoints())),
		"cells":        humanize.Comma(int64(summary.Cells)),
		"faces":        humanize.Comma(int64(summary.Faces)),
		"matchedFaces": humanize.Comma(int64(summary.MatchedFaces)),
		"lines":        humanize.Comma(int64(summary.Lines)),
		"output":       humanize.Comma(int64(summary.OutputCells)),
		"area":         humanize.FormatFloat("#,###.###", boundary.SurfaceArea()),
		"volume":       humanize.FormatFloat("#,###.###", boundary.EnclosedVolume()),
	}).Info("Extracted boundary")

	if outPath == "" {
		return meshboundary.WritePolyData(os.Stdout, boundary)
	}
	return writeFile(outPath, boundary)
}

// writeFile writes the boundary to path, reporting a failed close as well as
// a failed write.
func writeFile(path string, boundary *meshboundary.PolyData) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := meshboundary.WritePolyData(file, boundary); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close %s: %w", path, err)
	}
	return nil
}
