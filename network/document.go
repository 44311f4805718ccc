package network

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the serialised form of a network together with its designated
// source and sink. It decodes from YAML or JSON.
type Document struct {
	Source string         `json:"source" yaml:"source"`
	Sink   string         `json:"sink" yaml:"sink"`
	Nodes  []string       `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges  []DocumentEdge `json:"edges" yaml:"edges"`
}

// DocumentEdge is one edge entry of a Document.
type DocumentEdge struct {
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Capacity int64  `json:"capacity" yaml:"capacity"`
}

// Decode reads one Document from r. Unknown fields and non-integer capacities
// are reported as ErrMalformedDocument.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("%w: empty input", ErrMalformedDocument)
		}
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	return doc, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (Document, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and decodes the Document stored at path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	return Decode(f)
}

// Build constructs a Network from the document and validates it against the
// document's source and sink.
//
// Steps:
//  1. Declare listed nodes in order.
//  2. Declare edges in order (endpoints are declared on first use).
//  3. Validate: at least one edge, source and sink present.
func (d Document) Build(opts ...Option) (*Network, error) {
	n := New(opts...)
	for _, id := range d.Nodes {
		if err := n.AddNode(id); err != nil {
			return nil, err
		}
	}
	for i, e := range d.Edges {
		if _, err := n.AddEdge(e.Source, e.Target, e.Capacity); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	if err := n.Validate(d.Source, d.Sink); err != nil {
		return nil, err
	}

	return n, nil
}

// Encode writes the document as YAML.
func (d Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}

	return enc.Close()
}

// DocumentOf renders n back into a Document with the given source and sink.
// Merged duplicates appear once, carrying their summed capacity.
func DocumentOf(n *Network, source, sink string) Document {
	edges := n.Edges()
	doc := Document{
		Source: source,
		Sink:   sink,
		Nodes:  n.Nodes(),
		Edges:  make([]DocumentEdge, 0, len(edges)),
	}
	for _, e := range edges {
		doc.Edges = append(doc.Edges, DocumentEdge{Source: e.Source, Target: e.Target, Capacity: e.Capacity})
	}

	return doc
}
