package playerbar

import (
	"github.com/charmbracelet/bubbles/progress"

	"github.com/llehouerou/flick/internal/ui/styles"
)

// RenderProgress renders a gradient bar filled to ratio (0-1).
func RenderProgress(ratio float64, width int) string {
	bar := progress.New(
		progress.WithGradient(string(styles.T().Primary), string(styles.T().Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
		progress.WithFillCharacters('━', '─'),
	)
	bar.EmptyColor = string(styles.T().FgSubtle)
	return bar.ViewAs(ratio)
}
