package domain

import "time"

// Category status constants.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category is a node in the catalog taxonomy. A nil ParentID marks a
// top-level category.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parent_id,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Status    string    `json:"status"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryNode is a category with its resolved children, used by the
// storefront navigation tree.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}

// BuildCategoryTree assembles flat categories into a forest rooted at
// the top-level categories. Input order is preserved within a level.
func BuildCategoryTree(categories []Category) []CategoryNode {
	children := make(map[string][]Category)
	var roots []Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(c Category) CategoryNode
	build = func(c Category) CategoryNode {
		node := CategoryNode{Category: c, Children: []CategoryNode{}}
		for _, child := range children[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]CategoryNode, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r))
	}
	return tree
}
