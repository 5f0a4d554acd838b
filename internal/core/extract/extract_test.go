package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeaturesUnderHeading(t *testing.T) {
	text := `We discussed the plan.

## Features
- User authentication
- Real-time chat
2. Admin dashboard

Other notes:
- not a feature`

	features := Features(text)
	assert.Equal(t, []string{"User authentication", "Real-time chat", "Admin dashboard"}, features)
}

func TestFeaturesDeduplicatesCaseInsensitively(t *testing.T) {
	text := "Requirements:\n- Dark Mode\n- dark mode\n- Search"
	assert.Equal(t, []string{"Dark Mode", "Search"}, Features(text))
}

func TestFeaturesIgnoresBulletsOutsideSections(t *testing.T) {
	text := "- floating bullet\n- another one"
	assert.Empty(t, Features(text))
}

func TestFeaturesBoundsLength(t *testing.T) {
	text := "Features:\n- ok\n- " + strings.Repeat("long ", 30) + "\n- Valid item"
	assert.Equal(t, []string{"Valid item"}, Features(text))
}

func TestTechStackFirstOccurrenceOrder(t *testing.T) {
	text := "We'll deploy on Vercel, build the UI in React with Tailwind, and store data in PostgreSQL."
	assert.Equal(t, []string{"Vercel", "React", "Tailwind CSS", "PostgreSQL"}, TechStack(text))
}

func TestTechStackCanonicalNames(t *testing.T) {
	text := "nextjs frontend talking to postgres, tested with playwright"
	assert.Equal(t, []string{"Next.js", "PostgreSQL", "Playwright"}, TechStack(text))
}

func TestTechStackNoMatches(t *testing.T) {
	assert.Empty(t, TechStack("a plan with no named technology"))
}

func TestTasksMarkersAndCheckboxes(t *testing.T) {
	text := `TODO: wire up login
- [ ] design the schema
- [x] pick a name
random prose line`

	tasks := Tasks(text)
	assert.Equal(t, []string{"wire up login", "design the schema", "pick a name"}, tasks)
}

func TestTasksDeduplicatesAndCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString("TODO: repeated\nTODO: repeated\n")
	for i := 0; i < 15; i++ {
		b.WriteString("- [ ] task number ")
		b.WriteByte(byte('a' + i))
		b.WriteString("\n")
	}

	tasks := Tasks(b.String())
	assert.Len(t, tasks, maxTasks)
	assert.Equal(t, "repeated", tasks[0])
}
