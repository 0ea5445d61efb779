package thread

// DefaultPalette is the lane palette cycled over the root's direct
// children. Branch colors are assigned once per fresh load in stored
// child order.
var DefaultPalette = []string{
	"#bd93f9", // purple
	"#8be9fd", // cyan
	"#50fa7b", // green
	"#ffb86c", // orange
	"#ff79c6", // pink
	"#f1fa8c", // yellow
	"#ff5555", // red
	"#6272a4", // slate
}

// LaneColors maps each of the root's direct children ids to a palette
// color. Deep descendants inherit the color of their top-level branch
// ancestor via ColorFor.
type LaneColors map[int64]string

// AssignLaneColors assigns color[i] = palette[i mod len(palette)] over the
// root's children in stored order. Called once per fresh load, never on
// collapse. A nil or empty palette falls back to DefaultPalette.
func AssignLaneColors(root *Node, palette []string) LaneColors {
	colors := make(LaneColors)
	if root == nil {
		return colors
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	for i, child := range root.Children {
		colors[child.ID] = palette[i%len(palette)]
	}
	return colors
}

// ColorFor resolves the lane color of any node by climbing parent pointers
// until it reaches the node whose parent is the root, then looking up that
// top-level ancestor's assigned color. The root itself and unknown ids
// return fallback.
func (c LaneColors) ColorFor(index Index, id int64, fallback string) string {
	node, ok := index[id]
	if !ok {
		return fallback
	}
	for node.Parent != nil && node.Parent.Parent != nil {
		node = node.Parent
	}
	if node.Parent == nil {
		return fallback // the root has no lane
	}
	if color, ok := c[node.ID]; ok {
		return color
	}
	return fallback
}
