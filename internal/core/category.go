package core

// Category is a static taxonomy entry. Icon and color are symbolic tokens
// resolved by presentation code.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryAll is the synthetic pseudo-category meaning "no category filter".
const CategoryAll = "all"

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "personal"

// DefaultCategories is the fixed category set. It is configuration, not
// user-editable state.
var DefaultCategories = []Category{
	{ID: CategoryAll, Name: "All Tasks", Icon: "Inbox", Color: "primary"},
	{ID: "personal", Name: "Personal", Icon: "User", Color: "accent"},
	{ID: "work", Name: "Work", Icon: "Briefcase", Color: "status-progress"},
	{ID: "health", Name: "Health", Icon: "Heart", Color: "priority-high"},
	{ID: "learning", Name: "Learning", Icon: "BookOpen", Color: "priority-low"},
}

// LookupCategory returns the category with the given id, if present.
func LookupCategory(id string) (Category, bool) {
	for _, c := range DefaultCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
