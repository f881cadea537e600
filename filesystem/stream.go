package filesystem

import "github.com/boyter/gocodewalker"

// StreamFiles starts a file walker and returns a channel of files.
// The walker honours .gitignore and .ignore files; hidden files such as
// .atomist are included.
func StreamFiles(root string) <-chan *gocodewalker.File {
	fileListQueue := make(chan *gocodewalker.File, 100)
	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.IncludeHidden = true

	go func() {
		_ = fileWalker.Start()
	}()

	return fileListQueue
}
