package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/doctoc/internal/config"
	"github.com/dgallion1/doctoc/internal/reader"
	"github.com/dgallion1/doctoc/internal/toc"
	"github.com/spf13/cobra"
)

type transformFlags struct {
	settings     string
	headers      string
	includeTitle bool
	disable      bool
	asJSON       bool

	headersSet      bool
	includeTitleSet bool
}

var tf transformFlags

var transformCmd = &cobra.Command{
	Use:   "transform FILE...",
	Short: "Add heading ids and a table of contents to documents",
	Long: `Read each file (HTML, Markdown, text, PDF or DOCX), assign unique ids to its
headings and print the outline followed by the rewritten body. Other file
types are passed through untouched. An invalid heading pattern stops the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tf.headersSet = cmd.Flags().Changed("headers")
		tf.includeTitleSet = cmd.Flags().Changed("include-title")
		return runTransform(cmd.OutOrStdout(), args, tf, newLogger(cmd.ErrOrStderr()))
	},
}

func init() {
	transformCmd.Flags().StringVar(&tf.settings, "settings", os.Getenv("TOC_SETTINGS"), "YAML site settings file")
	transformCmd.Flags().StringVar(&tf.headers, "headers", toc.DefaultHeaders, "Pattern matched against heading tag names")
	transformCmd.Flags().BoolVar(&tf.includeTitle, "include-title", true, "Wrap the outline in a root item titled after the document")
	transformCmd.Flags().BoolVar(&tf.disable, "disable", false, "Skip the transform unless a document enables it")
	transformCmd.Flags().BoolVar(&tf.asJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(transformCmd)
}

// siteOptions layers built-in defaults, the settings file and flags.
func siteOptions(f transformFlags) (toc.Options, error) {
	settings, err := config.LoadSettings(f.settings)
	if err != nil {
		return toc.Options{}, err
	}
	opts := settings.Merge(toc.Defaults())
	if f.headersSet {
		opts.Headers = f.headers
	}
	if f.includeTitleSet {
		opts.IncludeTitle = f.includeTitle
	}
	if f.disable {
		opts.Enabled = false
	}
	if err := toc.Validate(opts); err != nil {
		return toc.Options{}, err
	}
	return opts, nil
}

type fileResult struct {
	Path     string `json:"path"`
	Outcome  string `json:"outcome"`
	Headings int    `json:"headings"`
	Outline  string `json:"outline,omitempty"`
	Body     string `json:"body"`
}

func runTransform(w io.Writer, files []string, f transformFlags, log *slog.Logger) error {
	site, err := siteOptions(f)
	if err != nil {
		return err
	}
	tr := toc.New(site, log, nil)

	results := make([]fileResult, 0, len(files))
	for _, path := range files {
		res, err := transformFile(tr, path)
		if err != nil {
			return err
		}
		if !f.asJSON {
			printResult(w, res, len(files) > 1)
			continue
		}
		results = append(results, res)
	}

	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}

func transformFile(tr *toc.Transformer, path string) (fileResult, error) {
	fh, err := os.Open(path)
	if err != nil {
		return fileResult{}, err
	}
	defer fh.Close()

	doc, err := reader.ReadFile(fh, path, reader.Options{PDFFallbackPdftotext: true})
	if err != nil {
		return fileResult{}, err
	}
	res, err := tr.Transform(doc)
	if err != nil {
		return fileResult{}, err
	}
	return fileResult{
		Path:     path,
		Outcome:  res.Outcome,
		Headings: res.Headings,
		Outline:  doc.Outline,
		Body:     doc.Body,
	}, nil
}

func printResult(w io.Writer, res fileResult, header bool) {
	if header {
		fmt.Fprintf(w, "==> %s <==\n", res.Path)
	}
	if res.Outline != "" {
		fmt.Fprintln(w, res.Outline)
	}
	fmt.Fprintln(w, res.Body)
}
