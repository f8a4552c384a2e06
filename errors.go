package hearth

import (
	"github.com/templaro/hearth/internal/models"
)

// ErrKeyNotFound is what an Adapter implementation returns from Get for a
// clean miss, so the cache can tell absence from a backend failure.
var ErrKeyNotFound = models.ErrKeyNotFound
