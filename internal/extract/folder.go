package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agenthands/deckcheck/internal/llm"
)

var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".bmp":  "image/bmp",
}

// FolderExtractor OCRs every image in a directory of exported slides, in
// natural numeric filename order.
type FolderExtractor struct {
	Vision    llm.VisionClient
	OCRPrompt string
}

func NewFolderExtractor(vision llm.VisionClient, ocrPrompt string) *FolderExtractor {
	return &FolderExtractor{Vision: vision, OCRPrompt: ocrPrompt}
}

// Extract returns the content blob for the folder. An empty blob means the
// folder held no qualifying images; that is a warning for the caller, not an
// error. One bad image does not abort the batch: it contributes an inline
// error marker and processing continues.
func (f *FolderExtractor) Extract(ctx context.Context, dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", &ExtractionError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return "", &ExtractionError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &ExtractionError{Path: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, ok := imageMIMEs[ext]; ok {
			names = append(names, e.Name())
		}
	}
	// Directory listing order is not assumed stable anywhere; the numeric key
	// alone defines slide order.
	sort.SliceStable(names, func(i, j int) bool {
		return naturalKey(names[i]) < naturalKey(names[j])
	})

	if len(names) == 0 {
		return "", nil
	}

	log.Printf("Processing %d images from folder...", len(names))

	blocks := make([]SlideBlock, 0, len(names))
	for i, name := range names {
		block := SlideBlock{Number: i + 1, Label: name}
		block.Segments = append(block.Segments, f.ocrFile(ctx, dir, name)...)
		blocks = append(blocks, block)
	}
	return BuildBlob(blocks), nil
}

func (f *FolderExtractor) ocrFile(ctx context.Context, dir, name string) []string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return []string{fmt.Sprintf("[Error processing image %s: %v]", name, err)}
	}

	img := llm.Image{
		MIME: imageMIMEs[strings.ToLower(filepath.Ext(name))],
		Data: data,
	}
	res, err := f.Vision.Describe(ctx, f.OCRPrompt, img)
	if err != nil {
		return []string{fmt.Sprintf("[Error processing image %s: %v]", name, err)}
	}
	if res.Rejected {
		// Safety-declined images contribute nothing, silently.
		return nil
	}
	return []string{res.Text}
}
