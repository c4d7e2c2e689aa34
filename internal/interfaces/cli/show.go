package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kilometers.ai/buildprep/internal/application/services"
	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/infrastructure/config"
	"kilometers.ai/buildprep/internal/infrastructure/publish"
	"kilometers.ai/buildprep/internal/interfaces/di"
)

// NewShowCommand creates the show command
func NewShowCommand(streams IO) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the metadata a pass would publish, without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), func(cfg *config.Config) {
				// nothing is written, so any directory will do
				if cfg.OutDir == "" {
					cfg.OutDir = "."
				}
			})
			if err != nil {
				return err
			}

			container, err := di.NewContainer(cfg, streams.Out, streams.Err)
			if err != nil {
				return err
			}

			report, err := container.Orchestrator(publish.Discard{}).Collect(cmd.Context())
			if err != nil && !errors.Is(err, services.ErrMissingTarget) {
				return err
			}
			renderReport(streams.Out, report, err)
			return nil
		},
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	keyStyle      = lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle()
	degradedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderReport writes a human-readable summary of report. Values are quoted
// so trailing newlines stay visible.
func renderReport(w io.Writer, report *domain.Report, collectErr error) {
	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("buildprep (%s mode)", report.Mode)))
	for _, v := range report.Values {
		style := valueStyle
		if v.Degraded {
			style = degradedStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(v.Key.String()),
			style.Render(strconv.Quote(v.Text)),
		))
	}
	if collectErr != nil {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(domain.KeyTargetTriple.String()),
			degradedStyle.Render(collectErr.Error()),
		))
	}

	rows = append(rows, "", titleStyle.Render(fmt.Sprintf("rerun-if-changed (%d)", len(report.Triggers))))
	for _, p := range report.Triggers {
		rows = append(rows, pathStyle.Render("  "+p))
	}

	fmt.Fprintln(w, strings.Join(rows, "\n"))
}
