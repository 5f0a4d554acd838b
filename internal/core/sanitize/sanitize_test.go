package sanitize

import (
	"strings"
	"testing"

	"github.com/ideagraph/loom/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestEnumCoercion(t *testing.T) {
	assert.Equal(t, "high", Priority("HIGH"))
	assert.Equal(t, DefaultPriority, Priority("urgent-ish"))
	assert.Equal(t, DefaultPriority, Priority(""))

	assert.Equal(t, "in-progress", Status("in-progress"))
	assert.Equal(t, DefaultStatus, Status("doing it"))

	assert.Equal(t, "low", Complexity(" low "))
	assert.Equal(t, DefaultComplexity, Complexity("trivial"))

	assert.Equal(t, "backend", Category("Backend"))
	assert.Equal(t, DefaultCategory, Category("misc"))
}

func TestTextClamp(t *testing.T) {
	long := strings.Repeat("w", MaxTextLen+50)
	out := Text("  " + long + "  ")
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, len(out), MaxTextLen+3)
}

func TestListClamp(t *testing.T) {
	items := make([]string, MaxListItems+4)
	for i := range items {
		items[i] = strings.Repeat("y", MaxItemLen+10)
	}
	items[2] = "  "

	out := List(items)
	assert.Len(t, out, MaxListItems)
	for _, item := range out {
		assert.LessOrEqual(t, len(item), MaxItemLen+3)
	}
}

func TestFeatureDetailsSanitized(t *testing.T) {
	d := FeatureDetails(model.FeatureDetails{
		Name:     "Auth",
		Priority: "ASAP",
		Status:   "Completed",
		Risks:    []string{"", "session hijacking"},
	})

	assert.Equal(t, DefaultPriority, d.Priority)
	assert.Equal(t, "completed", d.Status)
	assert.Equal(t, []string{"session hijacking"}, d.Risks)
}
