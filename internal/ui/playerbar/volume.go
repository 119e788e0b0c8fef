package playerbar

import (
	"fmt"

	"github.com/llehouerou/flick/internal/ui/styles"
)

// RenderVolume renders "vol  80%" or "mute  80%".
func RenderVolume(volume int, muted bool) string {
	if muted {
		return styles.T().S().Warning.Render(fmt.Sprintf("mute %3d%%", volume))
	}
	return styles.T().S().Muted.Render(fmt.Sprintf("vol %3d%%", volume))
}
