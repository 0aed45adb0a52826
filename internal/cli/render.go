package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"github.com/tidwall/sjson"
	"github.com/toheart/dumpy"
	"github.com/toheart/dumpy/decode"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// document is one input and, once rendered, its output.
type document struct {
	name    string
	data    []byte
	output  string
	options string // option snapshot as JSON
}

func readDocuments(stdin io.Reader, names []string) ([]*document, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}
	docs := make([]*document, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == stdinName {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		docs = append(docs, &document{name: name, data: data})
	}
	return docs, nil
}

// renderDocuments decodes and renders every document on its own Dumper.
// Outputs stay attached to their document so input order is kept.
func renderDocuments(ctx context.Context, docs []*document, format decode.Format, opts []dumpy.Option, log *logrus.Logger, workers int) error {
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	if workers > 0 {
		p = p.WithMaxGoroutines(workers)
	}

	for _, doc := range docs {
		doc := doc
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderDocument(doc, format, opts, log)
		})
	}
	return p.Wait()
}

func renderDocument(doc *document, format decode.Format, opts []dumpy.Option, log *logrus.Logger) error {
	if format == decode.FormatAuto {
		format = decode.Detect(doc.name)
	}
	value, err := decode.Decode(format, doc.data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", doc.name, err)
	}

	d, err := dumpy.New(append([]dumpy.Option{dumpy.WithLogger(log)}, opts...)...)
	if err != nil {
		return err
	}
	doc.output = d.Dump(value)
	if doc.options, err = optionsJSON(d); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"source": doc.name,
		"format": string(format),
		"bytes":  len(doc.data),
	}).Debug("document rendered")
	return nil
}

// optionsJSON snapshots the options in canonical order.
func optionsJSON(d *dumpy.Dumper) (string, error) {
	out := "{}"
	for _, name := range dumpy.OptionNames() {
		v, err := d.GetConfigOption(name)
		if err != nil {
			return "", err
		}
		if out, err = sjson.Set(out, name, v); err != nil {
			return "", fmt.Errorf("snapshot option %s: %w", name, err)
		}
	}
	return out, nil
}

// writeDocuments prints outputs in input order. Several documents get a
// header each and are separated by a blank line.
func writeDocuments(w io.Writer, docs []*document) error {
	for i, doc := range docs {
		if len(docs) > 1 {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "==> %s <==\n", doc.name); err != nil {
				return err
			}
		}
		out := doc.output
		if out == "" || out[len(out)-1] != '\n' {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
