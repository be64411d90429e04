package presenters

// SimplePresenter is a generic presenter for simple table/raw data. Every
// column is sortable.
type SimplePresenter struct {
	T          string
	H          []string
	R          [][]string
	RawData    interface{}
	DefaultCol string
}

func (p *SimplePresenter) Title() string             { return p.T }
func (p *SimplePresenter) Headers() []string         { return p.H }
func (p *SimplePresenter) Rows() [][]string          { return p.R }
func (p *SimplePresenter) Raw() interface{}          { return p.RawData }
func (p *SimplePresenter) SortableColumns() []string { return p.H }
func (p *SimplePresenter) DefaultSort() string       { return p.DefaultCol }

func (p *SimplePresenter) SortBy(column string) bool {
	idx := columnIndex(p.H, column)
	if idx < 0 {
		return false
	}
	sortRows(p.R, idx)
	return true
}
