package tablestyle

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	// CustomCleanStyle renders borderless tables with an upper-case header,
	// used for lists of targets.
	CustomCleanStyle = table.Style{
		Name: "CustomClean",
		Box:  table.BoxStyle{PaddingRight: " "},
		Format: table.FormatOptions{
			Header: text.FormatUpper,
			Row:    text.FormatDefault,
		},
		Options: table.Options{
			SeparateColumns: true,
		},
	}

	// KeyValueStyle renders two-column "key: value" listings without header.
	KeyValueStyle = table.Style{
		Name: "KeyValue",
		Box:  table.BoxStyle{PaddingRight: " "},
		Format: table.FormatOptions{
			Row: text.FormatDefault,
		},
	}
)

// KeyValue renders the given pairs, in order, with aligned values.
func KeyValue(pairs [][2]string) string {
	t := table.NewWriter()
	t.SetStyle(KeyValueStyle)
	for _, p := range pairs {
		t.AppendRow(table.Row{p[0] + ":", p[1]})
	}
	return t.Render()
}
