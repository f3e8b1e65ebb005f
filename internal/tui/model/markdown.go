package model

import (
	"fmt"
	"strings"

	"botdash/internal/catalog"
)

// CommandMarkdown is the detail pane source for cmd.
func CommandMarkdown(cmd catalog.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cmd.Name)
	if cmd.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", cmd.Description)
	}
	if cmd.Usage != "" {
		fmt.Fprintf(&b, "**Usage**\n\n```\n%s\n```\n\n", cmd.Usage)
	}
	if len(cmd.Examples) > 0 {
		b.WriteString("**Examples**\n\n")
		for _, ex := range cmd.Examples {
			fmt.Fprintf(&b, "- `%s`\n", ex)
		}
		b.WriteString("\n")
	}
	if len(cmd.Permissions) > 0 {
		fmt.Fprintf(&b, "**Permissions:** %s\n\n", strings.Join(cmd.Permissions, ", "))
	}
	category := cmd.CategoryName
	if category == "" {
		category = cmd.Category
	}
	if category != "" {
		fmt.Fprintf(&b, "_%s_\n", category)
	}
	return b.String()
}
