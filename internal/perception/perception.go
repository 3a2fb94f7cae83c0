// Package perception turns raw sensor readings into the two labeled sections
// of an observation synapse: a summary of the environment and a list of
// notable objects.
package perception

import (
	"strings"

	"github.com/eastworld-ai/eastworld/internal/eastworld"
)

// BuildPrompt renders the perception prompt from the turn's sensor readings.
func BuildPrompt(sensor eastworld.SensorData) string {
	replacer := strings.NewReplacer(
		"{{terrain}}", formatRows(sensor.Terrain),
		"{{weather}}", formatRows(sensor.Weather),
		"{{location}}", formatRows(sensor.Location),
		"{{structure}}", formatDetailedRows(sensor.Structure),
		"{{static_object}}", formatDetailedRows(sensor.Static),
		"{{dynamic_object}}", formatDetailedRows(sensor.Dynamic),
	)
	return replacer.Replace(promptTemplate)
}

// ParseContent splits a generated perception summary into its environment and
// objects sections using markdown heading lines as markers:
//
//   - no headings: the first line is the environment, the rest are objects
//   - one heading: text before it is the environment, text after it is objects
//   - two or more headings: the split point is the second heading
//
// Heading lines themselves are dropped from both sections.
func ParseContent(content string) (environment, objects string) {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	var headerIndices []int
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			headerIndices = append(headerIndices, i)
		}
	}

	var environmentLines, objectsLines []string
	switch {
	case len(headerIndices) == 0 && len(lines) > 0:
		environmentLines = lines[:1]
		objectsLines = lines[1:]
	case len(headerIndices) == 1:
		environmentLines = lines[:headerIndices[0]]
		objectsLines = lines[headerIndices[0]+1:]
	case len(headerIndices) >= 2:
		environmentLines = lines[:headerIndices[1]]
		objectsLines = lines[headerIndices[1]+1:]
	}

	return joinWithoutHeaders(environmentLines), joinWithoutHeaders(objectsLines)
}

func joinWithoutHeaders(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !strings.HasPrefix(line, "#") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
