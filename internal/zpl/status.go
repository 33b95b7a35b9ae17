package zpl

import (
	"strconv"
	"strings"
)

const (
	stx = "\x02"
	etx = "\x03"
)

// Status is the subset of the ~HS host status that decides whether a
// printer can accept a label
type Status struct {
	PaperOut       bool
	Paused         bool
	BufferFull     bool
	UnderTemp      bool
	OverTemp       bool
	HeadOpen       bool
	RibbonOut      bool
	LabelsInBuffer int
}

// IsReadyToPrint is true when no blocking condition is reported
func (s Status) IsReadyToPrint() bool {
	return !s.PaperOut &&
		!s.Paused &&
		!s.BufferFull &&
		!s.UnderTemp &&
		!s.OverTemp &&
		!s.HeadOpen &&
		!s.RibbonOut
}

// ParseHostStatus parses the three STX/ETX framed ~HS strings
func ParseHostStatus(raw string) (Status, error) {
	lines := []string{}

	for _, chunk := range strings.Split(raw, stx) {
		line := strings.TrimSpace(strings.ReplaceAll(chunk, etx, ""))

		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return Status{}, ErrInvalidStatus
	}

	// aaa,b,c,dddd,eee,f,g,h,iii,j,k,l
	first := strings.Split(lines[0], ",")
	// mmm,n,o,p,q,r,s,t,uuuuuuuu,v,www
	second := strings.Split(lines[1], ",")

	if len(first) < 12 || len(second) < 4 {
		return Status{}, ErrInvalidStatus
	}

	return Status{
		PaperOut:       flag(first[1]),
		Paused:         flag(first[2]),
		LabelsInBuffer: number(first[4]),
		BufferFull:     flag(first[5]),
		UnderTemp:      flag(first[10]),
		OverTemp:       flag(first[11]),
		HeadOpen:       flag(second[2]),
		RibbonOut:      flag(second[3]),
	}, nil
}

func flag(field string) bool {
	return strings.TrimSpace(field) == "1"
}

func number(field string) int {
	n, err := strconv.Atoi(strings.TrimSpace(field))

	if err != nil {
		return 0
	}

	return n
}
