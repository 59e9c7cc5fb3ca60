package serializer

import (
	"regexp"
	"strings"

	"labelcheck/internal/models"
)

// textEscaper escapes what would otherwise end or corrupt a double-quoted YAML scalar.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// plainScalar matches values that read back unchanged when written unquoted.
var plainScalar = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// Manual writes the fixed three-line-per-record layout without a codec.
type Manual struct{}

// NewManual creates the manual serializer.
func NewManual() *Manual {
	return &Manual{}
}

// Name implements Serializer.
func (m Manual) Name() string {
	return "manual"
}

// Serialize implements Serializer.
func (m Manual) Serialize(records []models.Record) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(DocumentStart + "\n")

	for _, r := range records {
		sb.WriteString("- id: " + scalar(r.ID) + "\n")
		sb.WriteString("  label: " + scalar(r.Label) + "\n")
		sb.WriteString("  text: " + quoted(r.Text) + "\n")
	}

	sb.WriteString(DocumentEnd + "\n")

	return []byte(sb.String()), nil
}

// scalar leaves ids and labels such as ex-01 or UNSAFE bare and quotes anything else.
func scalar(v string) string {
	if plainScalar.MatchString(v) && !isNull(v) {
		return v
	}

	return quoted(v)
}

func quoted(v string) string {
	return `"` + textEscaper.Replace(v) + `"`
}

func isNull(v string) bool {
	switch v {
	case "null", "Null", "NULL":
		return true
	}

	return false
}
