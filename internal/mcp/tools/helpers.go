// Package tools contains the MCP tool implementations for typeprofile.
package tools

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
	"github.com/usestring/typeprofile-mcp/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// maxTextFields caps the paths listed in a text summary.
const maxTextFields = 50

// printer formats counts with digit grouping.
var printer = message.NewPrinter(language.English)

// RenderSummary renders a profile as a few lines of text:
//
//	3 records, 2 paths
//	a      number 2, string 1
//	a.0    number 4
func RenderSummary(s *typeprofile.Schema) string {
	var sb strings.Builder
	printer.Fprintf(&sb, "%d records, %d paths", s.Records(), s.Len())

	if rt := typeprofile.SortedTypes(s.RecordTypes()); len(rt) > 0 {
		sb.WriteString(" (records: ")
		writeCounts(&sb, rt)
		sb.WriteString(")")
	}
	sb.WriteString("\n")

	fields := s.Fields()
	width := 0
	for i, f := range fields {
		if i == maxTextFields {
			break
		}
		width = max(width, len(f.Path))
	}

	for i, f := range fields {
		if i == maxTextFields {
			printer.Fprintf(&sb, "... %d more paths\n", len(fields)-maxTextFields)
			break
		}
		sb.WriteString(f.Path)
		sb.WriteString(strings.Repeat(" ", width-len(f.Path)+2))
		writeCounts(&sb, typeprofile.SortedTypes(f.Types))
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeCounts(sb *strings.Builder, counts []typeprofile.TypeCount) {
	for i, tc := range counts {
		if i > 0 {
			sb.WriteString(", ")
		}
		printer.Fprintf(sb, "%s %d", tc.Type, tc.Count)
	}
}

// FieldSummaries lists the paths of s in first-seen order.
func FieldSummaries(s *typeprofile.Schema) []types.FieldSummary {
	out := make([]types.FieldSummary, 0, s.Len())
	for _, f := range s.Fields() {
		out = append(out, types.FieldSummary{
			Path:    f.Path,
			Types:   typeprofile.SortedTypes(f.Types),
			Total:   f.Total(),
			Records: f.RecordCount(),
		})
	}
	return out
}
