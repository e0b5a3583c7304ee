package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/cssplugins/internal/plugin"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(4).Align(lipgloss.Right)
	idStyle     = lipgloss.NewStyle().Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	configStyle = lipgloss.NewStyle().PaddingLeft(6).Foreground(lipgloss.Color("#04B575"))
)

type pluginEntry struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Version string        `yaml:"version"`
	Source  string        `yaml:"source"`
	Options plugin.Config `yaml:"options,omitempty"`
}

func entries(list []plugin.Instance) []pluginEntry {
	out := make([]pluginEntry, 0, len(list))
	for _, inst := range list {
		info := inst.Info()
		out = append(out, pluginEntry{
			ID:      info.ID,
			Name:    info.Name,
			Version: info.Version,
			Source:  info.Source,
			Options: inst.Options(),
		})
	}
	return out
}

func writeYAML(w io.Writer, list []plugin.Instance) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"plugins": entries(list)}); err != nil {
		return fmt.Errorf("encode plugins: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, appPath string, list []plugin.Instance) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("PostCSS plugins (%d)", len(list))))
	b.WriteString("\n")
	for i, entry := range entries(list) {
		source := entry.Source
		if rel, err := filepath.Rel(appPath, source); err == nil && filepath.IsAbs(source) && !strings.HasPrefix(rel, "..") {
			source = rel
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			indexStyle.Render(fmt.Sprintf("%d.", i+1)),
			" ",
			idStyle.Render(entry.ID),
			" ",
			metaStyle.Render(fmt.Sprintf("%s %s [%s]", entry.Name, entry.Version, source)),
		))
		b.WriteString("\n")
		if len(entry.Options) > 0 {
			data, err := yaml.Marshal(map[string]any(entry.Options))
			if err != nil {
				return fmt.Errorf("encode %s options: %w", entry.ID, err)
			}
			b.WriteString(configStyle.Render(strings.TrimRight(string(data), "\n")))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
