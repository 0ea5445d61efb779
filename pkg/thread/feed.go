package thread

import "github.com/a-Gb/hankerlytics/pkg/model"

// BuildFeed assembles the synthetic tree behind the mosaic frontpage: a
// root standing for the listing itself, with one child per story in feed
// order. A story with a loaded preview subtree carries its replies under
// it; a story whose preview has not arrived yet is a leaf.
//
// The synthetic root uses id 0, which no real item can carry.
func BuildFeed(title string, stories []*model.Item, previews map[int64]map[int64]*model.Item) (*Node, Index) {
	root := &Node{
		Item: &model.Item{Title: title},
		ID:   0,
	}
	index := Index{0: root}

	for _, story := range stories {
		items := previews[story.ID]
		if items == nil {
			items = map[int64]*model.Item{story.ID: story}
		} else if _, ok := items[story.ID]; !ok {
			items[story.ID] = story
		}

		sub, subIndex := Build(story.ID, items)
		if sub == nil {
			continue
		}
		sub.Parent = root
		sub.Walk(func(n *Node) { n.Depth++ })
		root.Children = append(root.Children, sub)
		for id, n := range subIndex {
			index[id] = n
		}
	}

	ComputeMetrics(root)
	return root, index
}
