package service

import (
	"strings"
	"unicode/utf8"
)

// PageSize is the maximum number of characters in one page.
const PageSize = 2000

// paginator packs lines into pages of at most max characters, counting
// the newline that joins each line.
type paginator struct {
	max   int
	pages []string
	lines []string
	count int
}

func newPaginator() *paginator {
	return &paginator{max: PageSize}
}

// add appends one line, opening a new page when it would not fit. Lines
// longer than a page are cut.
func (p *paginator) add(line string) {
	if utf8.RuneCountInString(line) > p.max-1 {
		line = string([]rune(line)[:p.max-1])
	}
	n := utf8.RuneCountInString(line) + 1
	if p.count+n > p.max {
		p.close()
	}
	p.lines = append(p.lines, line)
	p.count += n
}

func (p *paginator) close() {
	if len(p.lines) == 0 {
		return
	}
	p.pages = append(p.pages, strings.Join(p.lines, "\n"))
	p.lines = p.lines[:0]
	p.count = 0
}

// Pages closes the current page and returns all pages.
func (p *paginator) Pages() []string {
	p.close()
	return p.pages
}
