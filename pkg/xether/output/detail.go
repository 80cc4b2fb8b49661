package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tidwall/gjson"
)

// Field is one labelled line of a detail view.
type Field struct {
	Label string
	Path  string
}

var (
	TeamFields = []Field{
		{"ID", "id"}, {"Name", "name"}, {"Description", "description"},
		{"Owner ID", "owner_id"}, {"Created", "created_at"}, {"Updated", "updated_at"},
	}
	ProjectFields = []Field{
		{"ID", "id"}, {"Name", "name"}, {"Description", "description"},
		{"Team ID", "team_id"}, {"Created", "created_at"}, {"Updated", "updated_at"},
	}
)

// WriteDetails prints a titled block with one "Label: value" line per field.
func WriteDetails(w io.Writer, title string, fields []Field, obj json.RawMessage) {
	_, _ = fmt.Fprintln(w, Bold(title))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, f := range fields {
		_, _ = fmt.Fprintf(tw, "  %s:\t%s\n", f.Label, textOr("N/A")(gjson.GetBytes(obj, f.Path)))
	}
	_ = tw.Flush()
}

// WriteAllFields prints every top-level key of obj in backend order.
func WriteAllFields(w io.Writer, title string, obj json.RawMessage) {
	_, _ = fmt.Fprintln(w, Bold(title))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	gjson.ParseBytes(obj).ForEach(func(key, value gjson.Result) bool {
		v := value.String()
		if value.Type == gjson.Null {
			v = "None"
		}
		_, _ = fmt.Fprintf(tw, "  %s:\t%s\n", key.String(), v)
		return true
	})
	_ = tw.Flush()
}
