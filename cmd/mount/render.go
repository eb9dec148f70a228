package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mount/internal/errors"
	"github.com/vango-dev/mount/pkg/dom"
	"github.com/vango-dev/mount/pkg/element"
)

type renderOptions struct {
	file      string
	tag       string
	attrs     []string
	content   string
	document  string
	container string
	text      bool
	out       string
	times     int
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Mount an element into a document and print it",
		Long: `Mount one described element into a container and write the
resulting document.

The descriptor comes from a JSON file (--file, "-" for stdin) or from
--tag, --attr and --content. Without --document a blank document with
an empty <div id="root"> is used.

Examples:
  mount render --tag a --attr href=http://example.com --attr target=_blank --content Click
  mount render --file button.json --document index.html --out index.html
  echo '{"tag":"li","content":"item"}' | mount render --file - --times 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.times < 1 {
				return errors.Newf(errors.CategoryCLI, "--times must be at least 1, got %d", opts.times)
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if opts.document == "" {
				opts.document = cfg.DocumentPath()
			}
			if opts.container == "" {
				opts.container = cfg.Container
			}

			logger := newLogger(cfg, flags.verbose, cmd.ErrOrStderr())
			renderer, err := newRenderer(cfg, opts.text, logger, nil)
			if err != nil {
				return err
			}

			d, err := readDescriptor(opts, cmd.InOrStdin())
			if err != nil {
				return err
			}
			doc, err := loadDocument(opts.document)
			if err != nil {
				return err
			}
			container, err := findContainer(doc, opts.container)
			if err != nil {
				return err
			}

			for i := 0; i < opts.times; i++ {
				if _, err := renderer.Mount(cmd.Context(), d, container); err != nil {
					return err
				}
			}

			return writeDocument(doc, opts.out, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", `Descriptor JSON file ("-" for stdin)`)
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Element tag")
	cmd.Flags().StringArrayVarP(&opts.attrs, "attr", "a", nil, "Attribute as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.content, "content", "c", "", "Inner content (markup)")
	cmd.Flags().StringVarP(&opts.document, "document", "d", "", "HTML document to mount into (default from mount.json, else blank)")
	cmd.Flags().StringVar(&opts.container, "container", "", "Container selector (default from mount.json)")
	cmd.Flags().BoolVar(&opts.text, "text", false, "Assign content as escaped text instead of markup")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the document here instead of stdout")
	cmd.Flags().IntVarP(&opts.times, "times", "n", 1, "Mount the element this many times")

	return cmd
}

// readDescriptor builds the descriptor from --file or from the flags.
func readDescriptor(opts *renderOptions, stdin io.Reader) (*element.Descriptor, error) {
	if opts.file != "" {
		if opts.tag != "" {
			return nil, errors.Newf(errors.CategoryCLI, "--file and --tag cannot be combined")
		}
		if opts.file == "-" {
			return element.Decode(stdin)
		}
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, errors.New(errors.CodeBadDescriptor).Wrap(err)
		}
		defer f.Close()
		return element.Decode(f)
	}

	if opts.tag == "" {
		return nil, errors.Newf(errors.CategoryCLI, "either --file or --tag is required").
			WithExample("mount render --tag p --content hello")
	}

	elOpts := make([]element.Option, 0, len(opts.attrs)+1)
	for _, a := range opts.attrs {
		key, value := parseAttr(a)
		elOpts = append(elOpts, element.WithAttr(key, value))
	}
	elOpts = append(elOpts, element.Content(opts.content))
	return element.New(opts.tag, elOpts...)
}

// parseAttr splits key=value. A bare key yields an empty value.
func parseAttr(s string) (string, string) {
	key, value, _ := strings.Cut(s, "=")
	return strings.TrimSpace(key), value
}

// loadDocument parses the document at path, or returns a blank document.
func loadDocument(path string) (*dom.Document, error) {
	if path == "" {
		return dom.Blank(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeDocument).Wrap(err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, errors.New(errors.CodeDocument).Wrap(err)
	}
	return doc, nil
}

// writeDocument writes doc to path, or to w when path is empty.
func writeDocument(doc *dom.Document, path string, w io.Writer) error {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return errors.New(errors.CodeDocument).Wrap(err)
	}
	buf.WriteByte('\n')

	if path == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.New(errors.CodeDocument).Wrap(err)
	}
	return nil
}

// findContainer returns the first element matching selector.
func findContainer(doc *dom.Document, selector string) (*dom.Node, error) {
	container, err := doc.QuerySelector(selector)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidSelector).
			WithDetailf("%q is not a valid selector", selector).
			Wrap(err)
	}
	if container == nil {
		return nil, errors.New(errors.CodeNoContainer).
			WithDetailf("no element matches %q", selector)
	}
	return container, nil
}

// mountFiles decodes each descriptor file and mounts it into the container
// matched by selector.
func mountFiles(ctx context.Context, doc *dom.Document, selector string, files []string, mountFn func(context.Context, *element.Descriptor, *dom.Node) error) error {
	if len(files) == 0 {
		return nil
	}
	container, err := findContainer(doc, selector)
	if err != nil {
		return err
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return errors.New(errors.CodeBadDescriptor).Wrap(err)
		}
		d, err := element.Decode(f)
		f.Close()
		if err != nil {
			return err
		}
		if err := mountFn(ctx, d, container); err != nil {
			return err
		}
	}
	return nil
}
