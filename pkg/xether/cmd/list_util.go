package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xether-ai/xether-cli/pkg/xether/output"
)

func paginate[T any](items []T, page, pageSize int, all bool) ([]T, string) {
	if all || pageSize <= 0 {
		return items, ""
	}
	if page <= 0 {
		page = 1
	}
	info := fmt.Sprintf("Showing page %d of %d (%d total items)", page, maxPage(len(items), pageSize), len(items))
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, info
	}
	end := min(start+pageSize, len(items))
	return items[start:end], info
}

func maxPage(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	return max(pages, 1)
}

// listView describes how a resource list is rendered.
type listView struct {
	columns []output.Column
	wide    []output.Column
	empty   string
}

func (rt *runtimeState) renderList(view listView, items []json.RawMessage, footer string) error {
	format := rt.OutputFormat()
	if format.Structured() {
		if items == nil {
			items = []json.RawMessage{}
		}
		return output.WriteObject(rt.Writer(), format, items)
	}
	if len(items) == 0 {
		output.Warn(rt.Writer(), "%s", view.empty)
		return nil
	}
	switch format {
	case output.FormatTable:
		output.WriteTable(rt.Writer(), view.columns, items)
	case output.FormatWide:
		columns := view.wide
		if columns == nil {
			columns = view.columns
		}
		output.WriteTable(rt.Writer(), columns, items)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if footer != "" {
		rt.println(footer)
	}
	return nil
}

// renderObject prints a single resource, using detail for table formats.
func (rt *runtimeState) renderObject(obj json.RawMessage, detail func()) error {
	format := rt.OutputFormat()
	if format.Structured() {
		return output.WriteObject(rt.Writer(), format, obj)
	}
	detail()
	return nil
}

// pageFlags are the client-side paging flags of list commands without
// server-side paging.
type pageFlags struct {
	page     int
	pageSize int
	all      bool
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&p.pageSize, "page-size", 0, "Items per page (defaults to settings.page_size)")
	cmd.Flags().BoolVar(&p.all, "all", false, "Disable pagination")
}

func (p *pageFlags) apply(rt *runtimeState, items []json.RawMessage) ([]json.RawMessage, string) {
	size := p.pageSize
	if size == 0 {
		size = rt.PageSize()
	}
	paged, info := paginate(items, p.page, size, p.all)
	if len(items) <= size && p.page <= 1 {
		info = ""
	}
	return paged, info
}
