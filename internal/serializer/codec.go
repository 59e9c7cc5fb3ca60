package serializer

import (
	"bytes"
	"regexp"

	"gopkg.in/yaml.v3"

	"labelcheck/internal/models"
	"labelcheck/pkg/errors"
)

// markerLine matches a line the delimited extractor would read as a document marker.
var markerLine = regexp.MustCompile(`(?m)^[ \t]*(?:---|\.\.\.)[ \t]*$`)

// Codec delegates to the YAML encoder: block style, two-space indent,
// id/label/text key order, unicode unescaped.
type Codec struct{}

// NewCodec creates the codec-backed serializer.
func NewCodec() *Codec {
	return &Codec{}
}

// Name implements Serializer.
func (c Codec) Name() string {
	return "codec"
}

// Serialize implements Serializer.
func (c Codec) Serialize(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}

	var doc yaml.Node
	if err := doc.Encode(records); err != nil {
		return nil, errors.Wrap(err, "build document")
	}

	quoteMarkerLines(&doc)

	var buf bytes.Buffer

	buf.WriteString(DocumentStart + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return nil, errors.Wrap(err, "encode records")
	}

	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "close encoder")
	}

	buf.WriteString(DocumentEnd + "\n")

	return buf.Bytes(), nil
}

// quoteMarkerLines forces double quotes on scalars holding a marker line, so
// the encoder keeps them on one escaped line instead of a literal block.
func quoteMarkerLines(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && markerLine.MatchString(n.Value) {
		n.Style = yaml.DoubleQuotedStyle
	}

	for _, child := range n.Content {
		quoteMarkerLines(child)
	}
}
