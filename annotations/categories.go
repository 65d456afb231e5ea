package annotations

// LabelCategories is a label-name table mapping class indices to
// human-readable names. Interpreters whose models embed no such table report
// its absence explicitly instead of handing back an empty one.
type LabelCategories struct {
	// Items is indexed by class index.
	Items []string
}

// NewLabelCategories builds a category table from an ordered name list.
func NewLabelCategories(names []string) *LabelCategories {
	items := make([]string, len(names))
	copy(items, names)
	return &LabelCategories{Items: items}
}

// Name returns the name for a class index, and whether the index is known.
func (c *LabelCategories) Name(label int) (string, bool) {
	if c == nil || label < 0 || label >= len(c.Items) {
		return "", false
	}
	return c.Items[label], true
}
