package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// terminalUI renders workflow alerts and confirmations on a terminal.
type terminalUI struct {
	out       io.Writer
	in        *bufio.Reader
	assumeYes bool
}

func newTerminalUI(out io.Writer, in *bufio.Reader, assumeYes bool) *terminalUI {
	return &terminalUI{out: out, in: in, assumeYes: assumeYes}
}

func (u *terminalUI) Alert(title, message string) {
	c := color.New(color.FgYellow, color.Bold)
	switch title {
	case "Erro":
		c = color.New(color.FgRed, color.Bold)
	case "Sucesso":
		c = color.New(color.FgGreen, color.Bold)
	}
	fmt.Fprintf(u.out, "%s %s\n", c.Sprint(title+":"), message)
}

func (u *terminalUI) Confirm(title, message string) bool {
	if u.assumeYes {
		return true
	}
	fmt.Fprintf(u.out, "%s %s [s/N] ", color.New(color.FgYellow, color.Bold).Sprint(title+":"), message)
	line, err := u.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func (u *terminalUI) NavigateBack() {
	fmt.Fprintln(u.out, "↩ Voltando para a lista de rotinas.")
}

// prompt reads one line, used for credentials.
func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}
