// Package nounlist reads tab-separated noun gender lists of the form
//
//	noun<TAB>gender<TAB>count
//
// with a header row. Gender may be m, f, masculine or feminine.
package nounlist

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vytor/genrequiz/internal/gender"
	"github.com/vytor/genrequiz/internal/models"
)

// Entry is one noun and its most frequent gender.
type Entry struct {
	Noun   string
	Gender models.Gender
	Count  int
}

// Result holds the parsed entries sorted by descending count, then noun.
type Result struct {
	Entries []Entry
	Skipped int
}

// Parse reads a noun list. When a noun appears more than once the row with
// the highest count wins. Rows with fewer than three columns, an unknown
// gender or a non-numeric count are skipped.
func Parse(r io.Reader) (Result, error) {
	best := map[string]Entry{}
	var res Result

	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			res.Skipped++
			continue
		}
		noun := strings.ToLower(strings.TrimSpace(parts[0]))
		g, ok := gender.ParseLoose(parts[1])
		count, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if noun == "" || !ok || err != nil {
			res.Skipped++
			continue
		}
		if prev, seen := best[noun]; !seen || count > prev.Count {
			best[noun] = Entry{Noun: noun, Gender: g, Count: count}
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, err
	}

	res.Entries = make([]Entry, 0, len(best))
	for _, e := range best {
		res.Entries = append(res.Entries, e)
	}
	sort.Slice(res.Entries, func(i, j int) bool {
		if res.Entries[i].Count != res.Entries[j].Count {
			return res.Entries[i].Count > res.Entries[j].Count
		}
		return res.Entries[i].Noun < res.Entries[j].Noun
	})
	return res, nil
}

// Difficulty maps a corpus frequency to a 1..3 difficulty: frequent nouns
// are easy, rare ones hard.
func Difficulty(count int) int {
	switch {
	case count >= 1000:
		return 1
	case count >= 100:
		return 2
	default:
		return 3
	}
}
