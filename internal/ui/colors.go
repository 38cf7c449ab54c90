package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	done  lipgloss.Style
	err   lipgloss.Style
	todo  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, d, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		done:  NewBold(d),
		err:   NewBold(e),
		todo:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Marker renders the DONE/TODO marker of a record.
func (p *Palette) Marker(done bool) string {
	if done {
		return p.done.Render("DONE")
	}
	return p.todo.Render("TODO")
}
