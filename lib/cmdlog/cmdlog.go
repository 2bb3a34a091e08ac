// Copyright (c) 2024–2026 The scpi developers. All rights reserved.
// Project site: https://github.com/gotmc/scpi
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package cmdlog provides colorized command/query logging for the example
// CLIs that drive a session interactively.
package cmdlog

import (
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gotmc/scpi"
)

var (
	// CmdStyle renders the command or query that was sent.
	CmdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	// ReplyStyle renders the instrument's reply.
	ReplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	// ErrStyle renders errors.
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// PrettyFuncs returns query and command closures that log each exchange with
// the session. Errors are logged, not returned; use these for exploratory
// scripts, not production control loops.
func PrettyFuncs(s *scpi.Session) (query func(string) string, cmd func(string)) {
	query = func(q string) string {
		r, err := s.Query(q)
		if err != nil {
			log.Printf("query %s: %s", CmdStyle.Render(q), ErrStyle.Render(err.Error()))
			return ""
		}
		r = strings.TrimSpace(r)
		if r == "" {
			log.Printf("%s: %s", CmdStyle.Render(q), ReplyStyle.Render("<no response>"))
			return r
		}
		log.Printf("%s: [%d] %s", CmdStyle.Render(q), len(r), ReplyStyle.Render(r))
		return r
	}
	cmd = func(c string) {
		if err := s.Command(c); err != nil {
			log.Printf("cmd %s: %s", CmdStyle.Render(c), ErrStyle.Render(err.Error()))
			return
		}
		log.Printf("%s()", CmdStyle.Render(c))
	}
	return query, cmd
}
