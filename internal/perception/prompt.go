package perception

import "strings"

// promptTemplate asks the model to condense raw sensor readings into the two
// labeled sections the synapse carries. Placeholders are substituted by
// BuildPrompt.
const promptTemplate = `You are the perception module of an autonomous agent exploring an open world.
Summarize the raw sensor readings below into two concise markdown sections:

## Environment
Describe the surrounding terrain, weather and current location in a short paragraph.

## Objects
List the notable structures and objects, one line each, with anything an agent
could interact with called out explicitly.

Raw sensor readings:
- Terrain:
{{terrain}}
- Weather:
{{weather}}
- Location:
{{location}}
- Structures:
{{structure}}
- Static objects:
{{static_object}}
- Dynamic objects:
{{dynamic_object}}

Respond with the two sections only, nothing else.`

// formatRows renders attribute tuples as indented bullet lines, or "    N/A"
// when there is nothing to report.
func formatRows(rows [][]string) string {
	if len(rows) == 0 {
		return "    N/A"
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, "    - "+strings.Join(row, ", "))
	}
	return strings.Join(lines, "\n")
}

// formatDetailedRows renders tuples whose last element is a free-form detail
// line: attributes joined on the bullet line, detail on its own line below.
func formatDetailedRows(rows [][]string) string {
	if len(rows) == 0 {
		return "    N/A"
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		attrs := row[:len(row)-1]
		detail := row[len(row)-1]
		lines = append(lines, "    - "+strings.Join(attrs, ", ")+"\n"+detail)
	}
	if len(lines) == 0 {
		return "    N/A"
	}
	return strings.Join(lines, "\n")
}
