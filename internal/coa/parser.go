// Package coa ingests chart-of-accounts listings (plan comptable text
// exports) and builds the account-code forest persisted per knowledge base.
package coa

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one parsed line of a plan comptable text export.
type Entry struct {
	Classe       int    `json:"classe"`
	SectionCode  string `json:"section_code"`
	SectionLabel string `json:"section_label"`
	Account      string `json:"account"`
	Label        string `json:"label"`
	ZeroPrefix   bool   `json:"zero_prefix"`
}

var (
	classeLine  = regexp.MustCompile(`(?i)^classe\s+([1-7])\b[\s:.-]*(.*)$`)
	sectionLine = regexp.MustCompile(`^(\d{2})[\s:.-]+(\S.*)$`)
	accountLine = regexp.MustCompile(`^(\d{3,})[\s:.-]+(\S.*)$`)
)

// ParseText reads a plan comptable text export line by line. Class headings
// ("Classe 6 : ...") set the current class, two-digit codes open a section,
// and codes of three or more digits are accounts attributed to the current
// section. Lines matching none of these are ignored.
func ParseText(r io.Reader) ([]Entry, error) {
	var (
		entries      []Entry
		classe       int
		sectionCode  string
		sectionLabel string
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if m := classeLine.FindStringSubmatch(line); m != nil {
			classe, _ = strconv.Atoi(m[1])
			sectionCode, sectionLabel = "", ""
			continue
		}

		if m := accountLine.FindStringSubmatch(line); m != nil {
			code := m[1]
			if classe == 0 {
				// Accounts before any class heading derive it from the code.
				classe = int(code[0] - '0')
			}
			entries = append(entries, Entry{
				Classe:       classeFor(code, classe),
				SectionCode:  sectionCode,
				SectionLabel: sectionLabel,
				Account:      code,
				Label:        strings.TrimSpace(m[2]),
				ZeroPrefix:   strings.HasSuffix(code, "0"),
			})
			continue
		}

		if m := sectionLine.FindStringSubmatch(line); m != nil {
			sectionCode = m[1]
			sectionLabel = strings.TrimSpace(m[2])
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// classeFor prefers the class digit encoded in the account code itself; the
// running class heading is a fallback for malformed exports.
func classeFor(code string, current int) int {
	if d := int(code[0] - '0'); d >= 1 && d <= 7 {
		return d
	}
	return current
}
