package mastodon

import (
	"net/http"

	"github.com/Cherry/wildebeest/internal/to"
)

// EmojisIndex lists the instance's custom emoji, of which there are none.
func EmojisIndex(env *Env, w http.ResponseWriter, r *http.Request) error {
	return to.JSON(w, []any{})
}
