package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"botdash/internal/catalog"
	"botdash/internal/dashboard"
	"botdash/internal/tui/view"
)

func printResult(w io.Writer, res catalog.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(res.Commands) == 0 {
		fmt.Fprintln(w, view.EmptyResultsMessage)
	}
	for _, c := range res.Commands {
		category := c.CategoryName
		if category == "" {
			category = c.Category
		}
		fmt.Fprintf(w, "%s  [%s]\n", c.Name, category)
		if c.Description != "" {
			fmt.Fprintf(w, "  %s\n", c.Description)
		}
		fmt.Fprintf(w, "  Usage: %s\n", c.Usage)
		if len(c.Examples) > 0 {
			fmt.Fprintf(w, "  Examples: %s\n", strings.Join(c.Examples, ", "))
		}
		if len(c.Permissions) > 0 {
			fmt.Fprintf(w, "  Permissions: %s\n", strings.Join(c.Permissions, ", "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Total Commands: %d  Categories: %d  Search Results: %d\n",
		res.Counters.Total, res.Counters.Categories, res.Counters.Results)
	return nil
}

func printDashboard(w io.Writer, st dashboard.State, text dashboard.Strings) {
	if st.Session != nil {
		fmt.Fprintf(w, "Logged in as %s (%s)\n\n", st.Session.Username, st.Session.ID)
	}

	s := st.Status
	if s.Err != nil {
		fmt.Fprintf(w, "Bot status: unavailable (%v)\n", s.Err)
	} else {
		fmt.Fprintf(w, "Bot status: %s  Servers: %d  Users: %d", s.Status, s.Guilds, s.Users)
		if s.Uptime != "" {
			fmt.Fprintf(w, "  Uptime: %s", s.Uptime)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%s\n", text.Title(dashboard.SectionOverview))
	switch g := st.Guilds; {
	case g.Err != nil:
		fmt.Fprintf(w, "  %s\n", text.ServersError)
	case len(g.Items) == 0:
		fmt.Fprintf(w, "  %s\n", text.NoServers)
	default:
		for _, item := range g.Items {
			fmt.Fprintf(w, "  %s  %s  (%s)\n", item.Name, item.Members, item.ID)
		}
	}

	fmt.Fprintf(w, "\n%s\n", text.Title(dashboard.SectionCustom))
	switch c := st.Custom; {
	case c.Err != nil:
		fmt.Fprintf(w, "  %s\n", text.CustomCommandsError)
	case len(c.Items) == 0:
		fmt.Fprintf(w, "  %s\n", text.NoCustomCommands)
	default:
		for _, item := range c.Items {
			if item.Description != "" {
				fmt.Fprintf(w, "  %s  %s\n", item.Name, item.Description)
			} else {
				fmt.Fprintf(w, "  %s\n", item.Name)
			}
		}
	}
}
