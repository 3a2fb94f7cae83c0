package perception

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eastworld-ai/eastworld/internal/eastworld"
)

func TestParseContent_NoHeadings(t *testing.T) {
	content := "A windswept plateau under grey clouds.\nA rusted antenna mast.\nScattered supply crates."

	env, obj := ParseContent(content)

	assert.Equal(t, "A windswept plateau under grey clouds.", env)
	assert.Equal(t, "A rusted antenna mast.\nScattered supply crates.", obj)
}

func TestParseContent_OneHeading(t *testing.T) {
	content := "Rolling dunes stretch east.\nVisibility is poor.\n## Objects\nA half-buried rover.\nA beacon, still blinking."

	env, obj := ParseContent(content)

	assert.Equal(t, "Rolling dunes stretch east.\nVisibility is poor.", env)
	assert.Equal(t, "A half-buried rover.\nA beacon, still blinking.", obj)
}

func TestParseContent_TwoHeadings(t *testing.T) {
	content := "## Environment\nDense fog over a frozen lake.\n## Objects\nAn ice-bound pier.\nTwo moored boats."

	env, obj := ParseContent(content)

	// Split at the second heading; heading lines are dropped from both sections.
	assert.Equal(t, "Dense fog over a frozen lake.", env)
	assert.Equal(t, "An ice-bound pier.\nTwo moored boats.", obj)
}

func TestParseContent_MoreThanTwoHeadings(t *testing.T) {
	content := "## Environment\nDesert basin.\n## Objects\nObelisk.\n## Notes\nIgnore this heading."

	env, obj := ParseContent(content)

	assert.Equal(t, "Desert basin.", env)
	assert.Equal(t, "Obelisk.\nIgnore this heading.", obj)
}

func TestParseContent_EmptyAndWhitespace(t *testing.T) {
	env, obj := ParseContent("")
	assert.Empty(t, env)
	assert.Empty(t, obj)

	env, obj = ParseContent("\n   \n\t\n")
	assert.Empty(t, env)
	assert.Empty(t, obj)
}

func TestParseContent_TrimsLines(t *testing.T) {
	content := "   first line   \n\n   second line  "

	env, obj := ParseContent(content)

	assert.Equal(t, "first line", env)
	assert.Equal(t, "second line", obj)
}

func TestBuildPrompt_PopulatesSections(t *testing.T) {
	sensor := eastworld.SensorData{
		Terrain:  [][]string{{"plateau", "rocky"}},
		Weather:  [][]string{{"overcast", "light wind"}},
		Location: [][]string{{"sector 7", "northern ridge"}},
		Structure: [][]string{
			{"antenna mast", "rusted", "A tall mast leaning slightly west."},
		},
	}

	prompt := BuildPrompt(sensor)

	assert.Contains(t, prompt, "    - plateau, rocky")
	assert.Contains(t, prompt, "    - overcast, light wind")
	assert.Contains(t, prompt, "    - sector 7, northern ridge")
	assert.Contains(t, prompt, "    - antenna mast, rusted\nA tall mast leaning slightly west.")
	// Empty lists render as N/A placeholders.
	assert.Contains(t, prompt, "- Static objects:\n    N/A")
	assert.Contains(t, prompt, "- Dynamic objects:\n    N/A")
	assert.False(t, strings.Contains(prompt, "{{"), "all placeholders should be substituted")
}
