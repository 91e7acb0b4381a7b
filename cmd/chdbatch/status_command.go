package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"chdbatch/internal/config"
	"chdbatch/internal/deps"
	"chdbatch/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show chdman availability and directory health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range statusReport(cfg, ctx.configPath, config.ApplicationDir(), colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func statusReport(cfg *config.Config, configPath, appDir string, colorize bool) []string {
	var lines []string

	lines = append(lines, renderSectionHeader("Configuration", colorize)...)
	lines = append(lines, renderStatusLine("Config file", statusInfo, configPath, colorize))
	lines = append(lines, renderStatusLine("Log file", statusInfo, cfg.LogPath(), colorize))
	lines = append(lines, renderStatusLine("Delete by default", statusInfo, yesNo(cfg.Batch.DeleteSourceDefault), colorize))
	lines = append(lines, renderStatusLine("PSP hunk size", statusInfo, fmt.Sprintf("%d", cfg.Tool.PSPHunkSize), colorize))
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
	tool := deps.CheckChdman(cfg.Tool.Path, appDir, config.ToolBinary())
	lines = append(lines, renderStatusLine(tool.Name, dependencyKind(tool), dependencyMessage(tool), colorize))
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Directories", colorize)...)
	for _, result := range preflight.RunAll(cfg) {
		kind := statusOK
		if !result.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return lines
}

func dependencyKind(status deps.Status) statusKind {
	switch {
	case status.Available && status.Source == deps.SourcePath:
		return statusWarn
	case status.Available:
		return statusOK
	default:
		return statusError
	}
}

func dependencyMessage(status deps.Status) string {
	parts := []string{status.Command}
	if status.Detail != "" {
		parts = append(parts, "("+status.Detail+")")
	}
	return strings.Join(parts, " ")
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	text := "[" + kind.String() + "]"
	if message != "" {
		text += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", text)
	return paint(kind.color(), line, colorize)
}

func (k statusKind) String() string {
	switch k {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (k statusKind) color() color.Attribute {
	switch k {
	case statusOK:
		return color.FgGreen
	case statusWarn:
		return color.FgYellow
	case statusError:
		return color.FgRed
	default:
		return color.FgBlue
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(color.FgBlue, line, colorize), paint(color.FgBlue, rule, colorize)}
}

func paint(attr color.Attribute, text string, colorize bool) string {
	c := color.New(attr)
	if colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
