package nounlist_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/nounlist"
)

func TestParse_ValidList(t *testing.T) {
	tsv := "noun\tgender\tcount\n" +
		"Maison\tf\t5400\n" +
		"livre\tm\t3100\n" +
		"page\tfeminine\t800\n"

	res, err := nounlist.Parse(strings.NewReader(tsv))
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, nounlist.Entry{Noun: "maison", Gender: models.Feminine, Count: 5400}, res.Entries[0])
	assert.Equal(t, "livre", res.Entries[1].Noun)
	assert.Equal(t, models.Feminine, res.Entries[2].Gender)
	assert.Zero(t, res.Skipped)
}

func TestParse_KeepsHighestCount(t *testing.T) {
	tsv := "noun\tgender\tcount\n" +
		"tour\tf\t20\n" +
		"tour\tm\t90\n" +
		"tour\tf\t40\n"

	res, err := nounlist.Parse(strings.NewReader(tsv))
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, models.Masculine, res.Entries[0].Gender)
	assert.Equal(t, 90, res.Entries[0].Count)
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	tsv := "noun\tgender\tcount\r\n" +
		"chat\tm\r\n" +
		"chien\tx\t10\r\n" +
		"arbre\tm\tmany\r\n" +
		"\r\n" +
		"table\tf\t12\r\n"

	res, err := nounlist.Parse(strings.NewReader(tsv))
	require.NoError(t, err)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "table", res.Entries[0].Noun)
	assert.Equal(t, 3, res.Skipped)
}

func TestParse_Empty(t *testing.T) {
	res, err := nounlist.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, 1, nounlist.Difficulty(5000))
	assert.Equal(t, 2, nounlist.Difficulty(100))
	assert.Equal(t, 3, nounlist.Difficulty(99))
}
