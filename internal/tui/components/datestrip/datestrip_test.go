package datestrip

import (
	"strings"
	"testing"

	"github.com/julianstephens/potato/internal/tracker"
)

func TestRender(t *testing.T) {
	out := Render(tracker.BuildDateStrip("2024-01-02", "2024-01-02"))
	for _, want := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", " 2•"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if Render(nil) != "" {
		t.Error("empty strip should render nothing")
	}
}
