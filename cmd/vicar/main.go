package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/SETI/go-vicar"
	"github.com/SETI/go-vicar/catalog"
	"github.com/SETI/go-vicar/export"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const defaultDB = "vicar.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "vicar"
	app.Usage = "VICAR image inspection and conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"VICAR_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "label",
			Usage:     "Print the label of a VICAR file",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print as JSON",
				},
				&cli.BoolFlag{
					Name:  "yaml",
					Usage: "print as YAML",
				},
			},
			Action: runLabel,
		},
		{
			Name:      "convert",
			Usage:     "Convert a VICAR file to another image format",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Usage: "output format, inferred from OUTPUT when empty",
				},
				&cli.IntFlag{
					Name:  "band",
					Usage: "band to render, -1 for RGB from the first three",
				},
				&cli.Float64Flag{
					Name:  "min",
					Usage: "lower stretch bound, measured when min equals max",
				},
				&cli.Float64Flag{
					Name:  "max",
					Usage: "upper stretch bound, measured when min equals max",
				},
				&cli.BoolFlag{
					Name:  "depth16",
					Usage: "render 16-bit grayscale",
				},
				&cli.StringFlag{
					Name:  "extraneous",
					Value: "fail",
					Usage: "trailing byte policy: fail, warn, print or ignore",
				},
			},
			Action: runConvert,
		},
		{
			Name:      "scan",
			Usage:     "Index the VICAR files under a directory",
			ArgsUsage: "DIRECTORY",
			Action:    runScan,
		},
		{
			Name:      "search",
			Usage:     "List indexed files by keyword value",
			ArgsUsage: "NAME=VALUE",
			Action:    runSearch,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func verboseLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

type labelEntry struct {
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}

func labelEntries(l *vicar.Label) []labelEntry {
	entries := make([]labelEntry, l.Len())
	for i := range entries {
		e := l.EntryAt(i)
		entries[i] = labelEntry{Name: e.Name, Value: plainValue(e.Value)}
	}
	return entries
}

func plainValue(v vicar.Value) interface{} {
	switch v.Kind() {
	case vicar.KindInt:
		n, _ := v.AsInt()
		return n
	case vicar.KindDecimal:
		f, _ := v.AsFloat()
		return f
	case vicar.KindString:
		s, _ := v.AsString()
		return s
	default:
		items, _ := v.AsList()
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = plainValue(item)
		}
		return out
	}
}

func runLabel(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	im, err := vicar.OpenLabel(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	l := im.Label()
	switch {
	case c.Bool("json"):
		b, err := json.MarshalIndent(labelEntries(l), "", "  ")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Println(string(b))
	case c.Bool("yaml"):
		b, err := yaml.Marshal(labelEntries(l))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Print(string(b))
	default:
		for i := 0; i < l.Len(); i++ {
			e := l.EntryAt(i)
			fmt.Printf("%s=%s\n", e.Name, e.Value)
		}
	}

	return nil
}

func parseExtraneous(s string) (vicar.Extraneous, error) {
	switch s {
	case "", "fail":
		return vicar.ExtraneousFail, nil
	case "warn":
		return vicar.ExtraneousWarn, nil
	case "print":
		return vicar.ExtraneousPrint, nil
	case "ignore":
		return vicar.ExtraneousIgnore, nil
	}
	return 0, fmt.Errorf("unknown extraneous policy %q", s)
}

func runConvert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	extraneous, err := parseExtraneous(c.String("extraneous"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	in, out := c.Args().Get(0), c.Args().Get(1)

	im, err := vicar.Open(in, &vicar.DecodeOptions{
		Extraneous: extraneous,
		Logger:     verboseLogger(c),
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	format := c.String("format")
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}

	o := &export.Options{
		Band:    c.Int("band"),
		Min:     c.Float64("min"),
		Max:     c.Float64("max"),
		Depth16: c.Bool("depth16"),
	}

	f, err := os.Create(out)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	switch strings.ToLower(format) {
	case "png":
		err = export.PNG(f, im, o)
	case "gif":
		err = export.GIF(f, im, o)
	case "tif", "tiff":
		err = export.TIFF(f, im, o)
	case "fit", "fits":
		err = export.FITS(f, im)
	case "vic", "vicar", "img":
		err = vicar.Encode(f, im)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func runScan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cat, err := catalog.New(c.String("db"), verboseLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	if err := cat.Scan(c.Args().First()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func runSearch(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	parts := strings.SplitN(c.Args().First(), "=", 2)
	if len(parts) != 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cat, err := catalog.New(c.String("db"), verboseLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	paths, err := cat.Find(parts[0], parts[1])
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, path := range paths {
		fmt.Println(path)
	}

	return nil
}
