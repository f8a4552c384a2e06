package glob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslate_Star(t *testing.T) {
	re, err := Translate("templates:list:*")
	require.NoError(t, err)

	require.True(t, re.MatchString("templates:list:featured:20:c1"))
	require.True(t, re.MatchString("templates:list:"))
	require.False(t, re.MatchString("templates:get:abc"))
	require.False(t, re.MatchString("prefix:templates:list:x"))
}

func TestTranslate_QuestionMark(t *testing.T) {
	re, err := Translate("templates:get:?")
	require.NoError(t, err)

	require.True(t, re.MatchString("templates:get:a"))
	require.False(t, re.MatchString("templates:get:ab"))
	require.False(t, re.MatchString("templates:get:"))
}

func TestTranslate_BracketsAreLiteral(t *testing.T) {
	re, err := Translate("templates:get:[1]")
	require.NoError(t, err)

	require.True(t, re.MatchString("templates:get:[1]"))
	require.False(t, re.MatchString("templates:get:1"))
}

func TestTranslate_Anchored(t *testing.T) {
	re, err := Translate("search:foo")
	require.NoError(t, err)

	require.True(t, re.MatchString("search:foo"))
	require.False(t, re.MatchString("search:foobar"))
	require.False(t, re.MatchString("xsearch:foo"))
}

// Regex metacharacters other than brackets pass through untranslated; a dot
// in the pattern matches any character. This documents the intended limit
// of the glob support.
func TestTranslate_MetacharactersPassThrough(t *testing.T) {
	re, err := Translate("a.c")
	require.NoError(t, err)

	require.True(t, re.MatchString("a.c"))
	require.True(t, re.MatchString("abc"))
}

func TestTranslate_InvalidPattern(t *testing.T) {
	_, err := Translate("search:(")
	require.Error(t, err)
}
