package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hesusruiz/mdtex/diagram"
	"github.com/hesusruiz/mdtex/markdown"
	"github.com/hesusruiz/mdtex/mdtex"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var debug bool

// fileCode resolves code references against the directory of the input file.
type fileCode struct {
	dir string
}

func (f fileCode) ResolveCode(name string) (string, error) {
	content, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// docLinks rewrites links to other Markdown documents so they point at the
// rendered counterparts.
type docLinks struct{}

func (docLinks) ResolveLink(target string) (string, error) {
	doc, frag := target, ""
	if i := strings.Index(target, "#"); i >= 0 {
		doc, frag = target[:i], target[i:]
	}
	return strings.TrimSuffix(doc, ".md") + ".pdf" + frag, nil
}

// processFile reads a Markdown file and returns its LaTeX rendering.
func processFile(inputFileName string, numbers bool, sugar *zap.SugaredLogger) ([]byte, error) {

	source, err := os.ReadFile(inputFileName)
	if err != nil {
		return nil, err
	}

	doc, err := markdown.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", inputFileName, err)
	}

	// Diagram sources become SVG files next to the document before rendering
	rootDir := filepath.Dir(inputFileName)
	pass := &diagram.Pass{RootDir: rootDir, Log: sugar}
	blocks, err := pass.Apply(doc.Blocks)
	if err != nil {
		return nil, err
	}

	// The macro table comes from the front matter, in the tag "mdtex.substitutions"
	substitutions := map[string]string{}
	for key, value := range doc.Config.Map("mdtex.substitutions") {
		if s, ok := value.(string); ok {
			substitutions[key] = s
		}
	}

	r := mdtex.Renderer{
		Labels:        doc.Labels,
		Substitutions: substitutions,
		Newline:       doc.Config.String("mdtex.newline"),
		Code:          fileCode{dir: rootDir},
		Links:         docLinks{},
		Numbers:       numbers || doc.Config.Bool("mdtex.codeNumbers"),
	}

	out := &mdtex.ByteRenderer{}
	if err := r.Render(out, blocks); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", inputFileName, err)
	}
	return out.Bytes(), nil
}

// processWatch checks periodically if an input file (inputFileName) has been modified, and if so
// it processes the file and writes the result to the output file (outputFileName)
func processWatch(inputFileName string, outputFileName string, numbers bool, sugar *zap.SugaredLogger) error {

	var old_timestamp time.Time
	var current_timestamp time.Time

	// Loop forever
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if old_timestamp.Before(current_timestamp) {
			old_timestamp = current_timestamp
			fmt.Println("************Processing*************")
			latex, err := processFile(inputFileName, numbers, sugar)
			if err != nil {
				sugar.Errorw("processing failed", "file", inputFileName, "error", err)
			} else if err := os.WriteFile(outputFileName, latex, 0664); err != nil {
				return err
			}
		}

		// Check again in one second
		time.Sleep(1 * time.Second)

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	// Default input file name
	var inputFileName = "index.md"

	// Output file name command line parameter
	outputFileName := c.String("output")

	// Dry run
	dryrun := c.Bool("dryrun")

	debug = c.Bool("debug")

	numbers := c.Bool("numbers")

	var z *zap.Logger
	var err error

	// Setup the logging system
	if debug {
		z, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		z, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	// Get the input file name
	if c.Args().Present() {
		inputFileName = c.Args().First()
	} else {
		fmt.Printf("no input file provided, using \"%v\"\n", inputFileName)
	}

	// Generate the output file name
	if len(outputFileName) == 0 {
		ext := path.Ext(inputFileName)
		if len(ext) == 0 {
			outputFileName = inputFileName + ".tex"
		} else {
			outputFileName = strings.Replace(inputFileName, ext, ".tex", 1)
		}
	}

	// Print a message
	if !dryrun {
		fmt.Printf("processing %v and generating %v\n", inputFileName, outputFileName)
	} else {
		fmt.Printf("dry run: processing %v without writing output\n", inputFileName)
	}

	// This is useful for development.
	// If the user specified to watch, loop forever processing the input file when modified
	if c.Bool("watch") {
		err = processWatch(inputFileName, outputFileName, numbers, sugar)
		return err
	}

	// Generate the LaTeX from the input file
	latex, err := processFile(inputFileName, numbers, sugar)
	if err != nil {
		return err
	}

	// Do nothing if flag dryrun was specified
	if dryrun {
		return nil
	}

	// Write the LaTeX to the output file
	err = os.WriteFile(outputFileName, latex, 0664)
	if err != nil {
		return err
	}

	return nil
}

func main() {

	app := &cli.App{
		Name:     "mdtex",
		Version:  "v0.02",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "process a Markdown document and produce LaTeX",
		UsageText: "mdtex [options] [INPUT_FILE] (default input file is index.md)",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write LaTeX to `FILE` (default is input file name with extension .tex)",
			},
			&cli.BoolFlag{
				Name:    "numbers",
				Aliases: []string{"l"},
				Usage:   "number the lines of code listings",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not generate output file, just process input file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}

}
