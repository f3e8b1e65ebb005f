package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"botdash/data"
)

const maxCatalogBytes = 8 << 20

// EmbeddedSource selects the catalog compiled into the binary.
const EmbeddedSource = "embedded"

// Load reads the catalog from a file path, an http(s) URL or, for
// EmbeddedSource, the shipped document.
func Load(ctx context.Context, source string) (*Catalog, error) {
	if source == "" {
		return nil, fmt.Errorf("catalog source is empty")
	}
	if source == EmbeddedSource {
		cat, err := Parse(bytes.NewReader(data.Commands))
		if err != nil {
			return nil, fmt.Errorf("parse embedded catalog: %w", err)
		}
		return cat, nil
	}

	var (
		r   io.ReadCloser
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		r, err = openURL(ctx, source)
	} else {
		r, err = os.Open(source)
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", source, err)
	}
	defer r.Close()

	cat, err := Parse(io.LimitReader(r, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", source, err)
	}
	return cat, nil
}

func openURL(ctx context.Context, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Parse decodes a catalog document and flattens its category groups. Each
// command keeps its own category key and takes the group's name as its
// CategoryName.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for _, group := range doc.Categories {
		for _, cmd := range group.Commands {
			cmd.CategoryName = group.Name
			cat.commands = append(cat.commands, cloneCommand(cmd))
		}
	}
	return cat, nil
}

// New builds a catalog from already-flattened commands.
func New(commands []Command) *Catalog {
	cp := make([]Command, len(commands))
	for i, cmd := range commands {
		cp[i] = cloneCommand(cmd)
	}
	return &Catalog{commands: cp}
}
