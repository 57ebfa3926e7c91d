package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bodgit/gridtransmit"
	"github.com/bodgit/gridtransmit/frame"
	"github.com/bodgit/gridtransmit/grid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-sixel"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const defaultDB = "gridtransmit.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	w := io.Discard
	if c.Bool("verbose") {
		w = os.Stderr
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}))
}

func readFrame(c *cli.Context) (*frame.Frame, error) {
	if file := c.String("frame"); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		f := new(frame.Frame)
		if err := f.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return f, nil
	}

	if !c.IsSet("pattern") || !c.IsSet("width") || !c.IsSet("height") {
		return nil, errors.New("either --frame or all of --pattern, --width and --height are required")
	}

	return &frame.Frame{
		Width:    c.Int("width"),
		Height:   c.Int("height"),
		CellSize: c.Int("cell-size"),
		Pattern:  c.String("pattern"),
	}, nil
}

func writeImage(c *cli.Context, g *grid.Grid) error {
	if file := c.String("output"); file != "" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		return png.Encode(f, g)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return png.Encode(c.App.Writer, g)
	}

	if c.Bool("sixel") {
		return sixel.NewEncoder(c.App.Writer).Encode(g)
	}

	return preview(c.App.Writer, g)
}

func main() {
	app := cli.NewApp()

	app.Name = "gridtransmit"
	app.Usage = "Prime cell grid image encoder"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GRIDTRANSMIT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.IntFlag{
			Name:    "cell-size",
			Aliases: []string{"s"},
			EnvVars: []string{"GRIDTRANSMIT_CELL_SIZE"},
			Value:   grid.DefaultCellSize,
			Usage:   "prime side length of each grid cell",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode an image into a pattern",
			Description: "Prints the pattern, or writes a binary frame with --output.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write a binary frame to `FILE`",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				logger := newLogger(c)

				f, err := gridtransmit.EncodeFile(c.Args().First(), c.Int("cell-size"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				logger.Debug("encoded", "file", c.Args().First(), "width", f.Width, "height", f.Height, "cell_size", f.CellSize, "cells", len(f.Pattern))

				if file := c.String("output"); file != "" {
					b, err := f.MarshalBinary()
					if err != nil {
						return cli.Exit(err, 1)
					}
					if err := os.WriteFile(file, b, 0o644); err != nil {
						return cli.Exit(err, 1)
					}
					return nil
				}

				fmt.Fprintln(c.App.Writer, f.Pattern)

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Decode a pattern into an image",
			Description: "Writes a PNG image, or previews it when writing to a terminal.",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "frame",
					Usage: "read a binary frame from `FILE`",
				},
				&cli.StringFlag{
					Name:    "pattern",
					Aliases: []string{"p"},
					Usage:   "pattern of 0 and 1 cells",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "image width in pixels",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "image height in pixels",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write a PNG image to `FILE`",
				},
				&cli.BoolFlag{
					Name:  "sixel",
					Usage: "preview using sixel graphics",
				},
			},
			Action: func(c *cli.Context) error {
				logger := newLogger(c)

				f, err := readFrame(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				g, err := f.Grid()
				if err != nil {
					return cli.Exit(err, 1)
				}
				logger.Debug("decoded", "width", g.Width, "height", g.Height, "cell_size", f.CellSize)

				if err := writeImage(c, g); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and archive every image",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				t, err := gridtransmit.New(c.String("db"), newLogger(c), c.Int("cell-size"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				if err := t.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "lookup",
			Usage:       "Print the archived pattern for an image",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				t, err := gridtransmit.New(c.String("db"), newLogger(c), c.Int("cell-size"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				f, err := t.Lookup(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				if f == nil {
					return cli.Exit(fmt.Sprintf("%s: not archived", c.Args().First()), 1)
				}

				fmt.Fprintf(c.App.Writer, "%dx%d/%d %s\n", f.Width, f.Height, f.CellSize, f.Pattern)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
