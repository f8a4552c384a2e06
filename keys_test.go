package hearth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyGenerators(t *testing.T) {
	require.Equal(t, "templates:list:featured:20:c1", ListKey("featured", 20, "c1"))
	require.Equal(t, "templates:get:abc", ResourceKey("abc"))
	require.Equal(t, "templates:mine:user-9:10:", OwnerKey("user-9", 10, ""))
	require.Equal(t, "search:foo:20", SearchKey("foo", 20))
	require.Equal(t, "templates:popular:10", PopularKey(10))
}

func TestKeyGenerators_Deterministic(t *testing.T) {
	require.Equal(t, ListKey("a", 1, "x"), ListKey("a", 1, "x"))
	require.NotEqual(t, ListKey("a", 1, "x"), ListKey("a", 2, "x"))
	require.NotEqual(t, SearchKey("a", 1), ListKey("a", 1, ""))
}
