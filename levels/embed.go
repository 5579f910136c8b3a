// Package levels embeds the built-in level set.
package levels

import (
	"embed"

	"github.com/milk9111/pixelplatformer/level"
)

//go:embed *.json
var LevelsFS embed.FS

// Load returns the built-in levels in play order.
func Load() ([]level.Level, error) {
	return level.LoadFS(LevelsFS, ".")
}
