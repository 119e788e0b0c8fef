//go:build !unix

package preview

func getCellSize() (cellW, cellH int) {
	return 8, 16
}
