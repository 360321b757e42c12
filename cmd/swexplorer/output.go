package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/mmcdole/swexplorer/internal/store"
)

// printPage fetches page and prints it as a table
func printPage(ctx context.Context, w io.Writer, st *store.Store, page int) error {
	if err := st.FetchCharactersByPage(ctx, page); err != nil {
		return err
	}
	chars, ok := st.GetCharactersByPage(page)
	if !ok {
		return fmt.Errorf("page %d could not be loaded", page)
	}

	printCharacters(w, chars)
	if last, ok := st.LastPage(); ok {
		fmt.Fprintf(w, "page %d of %d\n", page, last)
	}
	return nil
}

// printCharacters prints list rows as a table
func printCharacters(w io.Writer, chars []domain.Character) {
	rows := make([][]string, 0, len(chars))
	for _, c := range chars {
		rows = append(rows, listRow(c))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "DETAILS").
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

func listRow(item domain.ListItem) []string {
	return []string{item.GetID(), item.GetTitle(), item.GetDescription()}
}

// printCharacter prints every field of a character, one per line
func printCharacter(w io.Writer, c domain.Character) {
	fmt.Fprintln(w, c.Name)
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-10s %s\n", label, value)
		}
	}
	field("Height", c.FormattedHeight())
	field("Mass", c.FormattedMass())
	field("Hair", c.HairColor)
	field("Skin", c.SkinColor)
	field("Eyes", c.EyeColor)
	field("Born", c.BirthYear)
	field("Gender", c.Gender)
	if c.Homeworld.URL != "" {
		field("Homeworld", refName(c.Homeworld.Name, c.Homeworld.URL, c.Homeworld.Resolved))
	}

	films := make([]string, 0, len(c.Films))
	for _, f := range c.Films {
		films = append(films, refName(f.Title, f.URL, f.Resolved))
	}
	field("Films", strings.Join(films, ", "))

	vehicles := make([]string, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		vehicles = append(vehicles, refName(v.Name, v.URL, v.Resolved))
	}
	field("Vehicles", strings.Join(vehicles, ", "))
}

// refName falls back to the URL for references that did not resolve
func refName(name, url string, resolved bool) string {
	if resolved {
		return name
	}
	return url
}
