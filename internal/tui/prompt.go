// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const passwordCharLimit = 72

// promptModel is a single-line Bubble Tea input. It quits on enter (keeping
// the value) or on esc / ctrl+c (cancelled).
type promptModel struct {
	label     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel(label string, secret bool) promptModel {
	input := textinput.New()
	input.Width = 40
	input.Focus()
	if secret {
		input.CharLimit = passwordCharLimit
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}

	return promptModel{label: label, input: input}
}

// Init implements [tea.Model].
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.submit):
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.label + ":"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: confirm │ esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the entered text.
func (m promptModel) Value() string {
	return m.input.Value()
}

// Prompt reads one line from in, echoing to out. With secret set the input
// is masked. Cancelling returns [ErrUserQuit].
func Prompt(ctx context.Context, label string, secret bool, in io.Reader, out io.Writer) (string, error) {
	program := tea.NewProgram(newPromptModel(label, secret),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	finalModel, err := program.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(promptModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.cancelled {
		return "", ErrUserQuit
	}

	return result.Value(), nil
}
