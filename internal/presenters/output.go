package presenters

import "github.com/ygelfand/mpvctl/internal/ui"

// ToOutput converts a presenter into printable output data.
func ToOutput(p Presenter) ui.OutputData {
	return ui.OutputData{
		Title:   p.Title(),
		Headers: p.Headers(),
		Rows:    p.Rows(),
		Raw:     p.Raw(),
	}
}
