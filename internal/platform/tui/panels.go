package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-garden/internal/catalog"
	"github.com/vovakirdan/tui-garden/internal/garden"
)

// Creator form fields, in focus order.
const (
	fieldName = iota
	fieldGlyph
	fieldRate
	fieldCount
)

func fmtSuns(v float64) string {
	return humanize.Comma(garden.Floor(v))
}

func fmtRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// newTable creates a focused table styled like the rest of the view.
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func newShopTable(height int) table.Model {
	return newTable([]table.Column{
		{Title: "Item", Width: 24},
		{Title: "Cost", Width: 16},
		{Title: "Suns/s", Width: 8},
		{Title: "Kind", Width: 13},
		{Title: "Note", Width: 14},
	}, height)
}

func newAlmanacTable(height int) table.Model {
	return newTable([]table.Column{
		{Title: "#", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Kind", Width: 13},
		{Title: "Suns/s", Width: 8},
	}, height)
}

// shopRows renders shop entries as table rows.
func shopRows(entries []garden.ShopEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		note := ""
		switch {
		case e.Locked != "":
			note = e.Locked
		case !e.Affordable:
			note = "save up"
		case e.Owned > 0:
			note = fmt.Sprintf("own %d", e.Owned)
		}
		rate := "-"
		if e.Item.Rate > 0 {
			rate = fmtRate(e.Item.Rate)
		}
		rows[i] = table.Row{
			e.Item.Name,
			humanize.Comma(e.Item.Cost),
			rate,
			kindLabel(e.Item),
			note,
		}
	}
	return rows
}

// almanacRows renders the almanac; undiscovered entries stay hidden.
func almanacRows(a garden.Almanac) []table.Row {
	rows := make([]table.Row, len(a.Entries))
	for i, e := range a.Entries {
		name, rate := "???", "?"
		if e.Discovered {
			name = e.Item.Name
			rate = fmtRate(e.Item.Rate)
		}
		rows[i] = table.Row{
			strconv.Itoa(int(e.Item.ID)),
			name,
			kindLabel(e.Item),
			rate,
		}
	}
	return rows
}

func kindLabel(it catalog.Item) string {
	if it.IsCustom {
		return "custom"
	}
	return strings.ReplaceAll(string(it.Category), "_", " ")
}

// newCreatorInputs builds the name, glyph and rate inputs of the creator.
func newCreatorInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Prompt = "Name:  "
	name.Placeholder = "Moonflower"
	name.CharLimit = 40
	inputs[fieldName] = name

	glyph := textinput.New()
	glyph.Prompt = "Glyph: "
	glyph.Placeholder = "🌙"
	glyph.CharLimit = 16
	inputs[fieldGlyph] = glyph

	rate := textinput.New()
	rate.Prompt = "Rate:  "
	rate.Placeholder = "suns per second"
	rate.CharLimit = 12
	inputs[fieldRate] = rate

	inputs[fieldName].Focus()
	return inputs
}

// creatorRequest turns the form into a request. An empty rate means 0.
func creatorRequest(inputs []textinput.Model) (garden.CustomItemRequest, error) {
	req := garden.CustomItemRequest{
		Name:  inputs[fieldName].Value(),
		Glyph: inputs[fieldGlyph].Value(),
	}
	if raw := strings.TrimSpace(inputs[fieldRate].Value()); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%w: rate %q is not a number", garden.ErrValidation, raw)
		}
		req.Rate = rate
	}
	return req, nil
}
