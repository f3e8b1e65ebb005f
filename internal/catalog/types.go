package catalog

// AllCategories is the category filter value that matches every command.
const AllCategories = "all"

// Command is one documented bot command.
type Command struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Usage        string   `json:"usage"`
	Examples     []string `json:"examples"`
	Permissions  []string `json:"permissions"`
	Category     string   `json:"category"`
	CategoryName string   `json:"categoryName"`
}

// Catalog is the flattened, read-only command list in document order.
type Catalog struct {
	commands []Command
}

// Commands returns a deep copy of the catalog's commands.
func (c *Catalog) Commands() []Command {
	if c == nil {
		return nil
	}
	out := make([]Command, len(c.commands))
	for i, cmd := range c.commands {
		out[i] = cloneCommand(cmd)
	}
	return out
}

// cloneCommand copies cmd with its own slices. Missing lists become empty.
func cloneCommand(cmd Command) Command {
	cmd.Examples = append([]string{}, cmd.Examples...)
	cmd.Permissions = append([]string{}, cmd.Permissions...)
	return cmd
}

// Len returns the number of commands.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.commands)
}

// FilterState is the user's current search input and category choice.
type FilterState struct {
	SearchTerm string
	Category   string
}

// Unfiltered is the state right after load.
func Unfiltered() FilterState {
	return FilterState{Category: AllCategories}
}

// Counters are the summary numbers rendered beside the results.
type Counters struct {
	Total      int `json:"total"`
	Categories int `json:"categories"`
	Results    int `json:"results"`
}

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// document is the on-disk catalog shape.
type document struct {
	Categories []struct {
		Name     string    `json:"name"`
		Commands []Command `json:"commands"`
	} `json:"categories"`
}
