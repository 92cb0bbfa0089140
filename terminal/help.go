package terminal

import (
	"fmt"
	"strings"
)

// helpCategory groups key bindings for the help overlay.
type helpCategory struct {
	Name     string
	Commands []helpCommand
}

type helpCommand struct {
	Key         string
	Description string
}

var helpCategories = []helpCategory{
	{
		Name: "Modes",
		Commands: []helpCommand{
			{"v", "Add vertices with a click"},
			{"e", "Connect two vertices"},
			{"m", "Drag vertices"},
		},
	},
	{
		Name: "Editing",
		Commands: []helpCommand{
			{"k", "Cycle the color of new vertices"},
			{"u/^Z", "Undo"},
			{"r/^Y", "Redo"},
			{"c", "Clear the graph"},
			{"right", "Edit vertex or edge under the mouse"},
		},
	},
	{
		Name: "Properties",
		Commands: []helpCommand{
			{"n", "Rename"},
			{"k", "Next color"},
			{"h", "Next shape (vertex)"},
			{"t/d/i", "Style, direction, mid arrow (edge)"},
			{"Enter", "Apply"},
			{"Esc", "Cancel"},
		},
	},
	{
		Name: "Files",
		Commands: []helpCommand{
			{"s", "Save the text report"},
			{"p", "Save a PNG image"},
			{"w", "Save the drawing as JSON"},
			{"q/Esc", "Quit"},
		},
	},
}

// helpLines returns the help overlay, one string per screen row.
func helpLines() []string {
	const width = 48

	border := strings.Repeat("─", width)
	lines := []string{"┌" + border + "┐"}
	lines = append(lines, fmt.Sprintf("│ %-*s │", width-2, "GRAPHDRAW HELP"))
	for _, cat := range helpCategories {
		lines = append(lines, fmt.Sprintf("│ %-*s │", width-2, cat.Name+":"))
		for _, cmd := range cat.Commands {
			lines = append(lines, fmt.Sprintf("│   %-6s %-*s │", cmd.Key, width-11, cmd.Description))
		}
	}
	lines = append(lines, fmt.Sprintf("│ %-*s │", width-2, "Press any key to close"))
	lines = append(lines, "└"+border+"┘")
	return lines
}

// compactHelp returns the single-line hint shown in the status bar.
func compactHelp() string {
	return "v/e/m:mode k:color u:undo r:redo s/p/w:save ?:help q:quit"
}
