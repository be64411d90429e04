package commands

import (
	"strings"
	"testing"

	"github.com/ygelfand/mpvctl/internal/presenters"
)

func TestPrintRejectsUnknownSortColumn(t *testing.T) {
	p := &presenters.SimplePresenter{T: "Configuration", H: []string{"KEY", "VALUE"}}
	err := Print(p, &MpvCtlOptions{Sort: "size"})
	if err == nil {
		t.Fatal("Print() should fail for an unknown sort column")
	}
	if !strings.Contains(err.Error(), "KEY, VALUE") {
		t.Errorf("error %q should list the sortable columns", err)
	}
}
