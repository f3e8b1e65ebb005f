package catalog

import "strings"

// Filter returns the commands visible under state, in catalog order.
// A command is visible when its category matches (or the filter is "all")
// and the search term, compared case-insensitively, occurs in its name,
// description, usage or any example.
func Filter(commands []Command, state FilterState) []Command {
	term := strings.ToLower(state.SearchTerm)
	category := state.Category
	if category == "" {
		category = AllCategories
	}

	visible := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		if category != AllCategories && cmd.Category != category {
			continue
		}
		if term != "" && !matches(cmd, term) {
			continue
		}
		visible = append(visible, cmd)
	}
	return visible
}

// matches expects term to be lower-cased already.
func matches(cmd Command, term string) bool {
	if strings.Contains(strings.ToLower(cmd.Name), term) ||
		strings.Contains(strings.ToLower(cmd.Description), term) ||
		strings.Contains(strings.ToLower(cmd.Usage), term) {
		return true
	}
	for _, ex := range cmd.Examples {
		if strings.Contains(strings.ToLower(ex), term) {
			return true
		}
	}
	return false
}

// Stats derives the counters from the full catalog and the visible subset.
func Stats(all, visible []Command) Counters {
	seen := make(map[string]struct{}, len(all))
	for _, cmd := range all {
		seen[cmd.Category] = struct{}{}
	}
	return Counters{
		Total:      len(all),
		Categories: len(seen),
		Results:    len(visible),
	}
}

// Categories lists the distinct categories in first-appearance order, each
// with the display name of the group it came from. The "all" option is not
// included.
func Categories(all []Command) []CategoryOption {
	var opts []CategoryOption
	seen := make(map[string]struct{})
	for _, cmd := range all {
		if _, ok := seen[cmd.Category]; ok {
			continue
		}
		seen[cmd.Category] = struct{}{}
		name := cmd.CategoryName
		if name == "" {
			name = cmd.Category
		}
		opts = append(opts, CategoryOption{Key: cmd.Category, Name: name})
	}
	return opts
}

// Result is a filtered view of the catalog together with its counters.
type Result struct {
	Counters Counters  `json:"counters"`
	Commands []Command `json:"commands"`
}

// Search filters all under state and computes the counters in one step.
func Search(all []Command, state FilterState) Result {
	visible := Filter(all, state)
	return Result{Counters: Stats(all, visible), Commands: visible}
}
