package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agenthands/deckcheck/internal/analyze"
	"github.com/agenthands/deckcheck/internal/config"
	"github.com/agenthands/deckcheck/internal/llm"
	"github.com/stretchr/testify/assert"
)

// testSlide describes one slide of a generated deck: literal shape texts plus
// optional embedded image payloads.
type testSlide struct {
	texts  []string
	images [][]byte
}

// writeDeck builds a minimal OOXML package on disk: presentation part, its
// relationships, one part per slide, per-slide relationships and media.
func writeDeck(t *testing.T, slides ...testSlide) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name, content string) {
		w, err := zw.Create(name)
		assert.NoError(t, err)
		_, err = w.Write([]byte(content))
		assert.NoError(t, err)
	}

	var sldIDs, presRels strings.Builder
	mediaN := 0
	for i := range slides {
		rid := fmt.Sprintf("rId%d", i+1)
		sldIDs.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 256+i, rid))
		presRels.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, rid, i+1))
	}

	add("ppt/presentation.xml", fmt.Sprintf(
		`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:sldIdLst>%s</p:sldIdLst></p:presentation>`,
		sldIDs.String()))
	add("ppt/_rels/presentation.xml.rels", fmt.Sprintf(
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">%s</Relationships>`,
		presRels.String()))

	for i, slide := range slides {
		var shapes, slideRels strings.Builder
		for _, text := range slide.texts {
			shapes.WriteString(fmt.Sprintf(`<p:sp><p:txBody><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, text))
		}
		for j, img := range slide.images {
			mediaN++
			rid := fmt.Sprintf("rId%d", j+1)
			media := fmt.Sprintf("image%d.png", mediaN)
			shapes.WriteString(fmt.Sprintf(`<p:pic><p:blipFill><a:blip r:embed="%s"/></p:blipFill></p:pic>`, rid))
			slideRels.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`, rid, media))
			add("ppt/media/"+media, string(img))
		}

		add(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), fmt.Sprintf(
			`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:cSld><p:spTree>%s</p:spTree></p:cSld></p:sld>`,
			shapes.String()))
		if slideRels.Len() > 0 {
			add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), fmt.Sprintf(
				`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">%s</Relationships>`,
				slideRels.String()))
		}
	}

	assert.NoError(t, zw.Close())
	return path
}

func TestDeckExtractHeadersPerSlide(t *testing.T) {
	path := writeDeck(t,
		testSlide{texts: []string{"Alpha"}},
		testSlide{texts: []string{"Beta"}},
		testSlide{},
	)

	ex := NewDeckExtractor(&MockVision{}, "p")
	blob, err := ex.Extract(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, 3, strings.Count(blob, "--- Slide "))
	assert.Less(t, strings.Index(blob, "--- Slide 1 ---"), strings.Index(blob, "Alpha"))
	assert.Less(t, strings.Index(blob, "--- Slide 2 ---"), strings.Index(blob, "Beta"))
	assert.Contains(t, blob, "--- Slide 3 ---")
}

func TestDeckExtractTextPrecedesImageText(t *testing.T) {
	path := writeDeck(t, testSlide{
		texts:  []string{"Title", "Body"},
		images: [][]byte{[]byte("img-bytes")},
	})

	mock := &MockVision{Response: llm.Result{Text: "from image"}}
	ex := NewDeckExtractor(mock, "extract text")

	blob, err := ex.Extract(context.Background(), path)
	assert.NoError(t, err)

	assert.Less(t, strings.Index(blob, "Title"), strings.Index(blob, "Body"))
	assert.Less(t, strings.Index(blob, "Body"), strings.Index(blob, "[Text from image on slide]: from image"))

	assert.Equal(t, []string{"extract text"}, mock.Prompts)
	assert.Equal(t, []byte("img-bytes"), mock.Images[0].Data)
	assert.Equal(t, "image/png", mock.Images[0].MIME)
}

func TestDeckExtractSafetyRejectedImageSkipped(t *testing.T) {
	path := writeDeck(t, testSlide{
		texts:  []string{"Safe text"},
		images: [][]byte{[]byte("bad"), []byte("good")},
	})

	mock := &MockVision{ResponseQueue: []llm.Result{
		{Rejected: true, Reason: "SAFETY"},
		{Text: "readable"},
	}}
	ex := NewDeckExtractor(mock, "p")

	blob, err := ex.Extract(context.Background(), path)
	assert.NoError(t, err)

	// The rejected image adds nothing; the next image still gets processed.
	assert.Equal(t, 1, strings.Count(blob, "[Text from image on slide]:"))
	assert.Contains(t, blob, "readable")
	assert.Len(t, mock.Images, 2)
}

func TestDeckExtractUnopenableFile(t *testing.T) {
	dir := t.TempDir()
	garbled := filepath.Join(dir, "broken.pptx")
	assert.NoError(t, os.WriteFile(garbled, []byte("not a zip"), 0o644))

	ex := NewDeckExtractor(&MockVision{}, "p")

	var exErr *ExtractionError
	_, err := ex.Extract(context.Background(), garbled)
	assert.ErrorAs(t, err, &exErr)

	_, err = ex.Extract(context.Background(), filepath.Join(dir, "missing.pptx"))
	assert.ErrorAs(t, err, &exErr)
}

func TestDeckExtractRevenueRoundTrip(t *testing.T) {
	// Slide 1 states a figure, slide 2 carries a conflicting figure inside an
	// image, slide 3 is empty.
	path := writeDeck(t,
		testSlide{texts: []string{"Revenue: $10M"}},
		testSlide{images: [][]byte{[]byte("chart")}},
		testSlide{},
	)

	mock := &MockVision{Response: llm.Result{Text: "Revenue: $12M"}}
	ex := NewDeckExtractor(mock, "p")

	blob, err := ex.Extract(context.Background(), path)
	assert.NoError(t, err)

	s1 := strings.Index(blob, "--- Slide 1 ---")
	s2 := strings.Index(blob, "--- Slide 2 ---")
	s3 := strings.Index(blob, "--- Slide 3 ---")
	first := strings.Index(blob, "Revenue: $10M")
	second := strings.Index(blob, "Revenue: $12M")

	// Both figures present, each attributed to its slide, in order.
	assert.True(t, s1 < first && first < s2, "slide 1 figure inside slide 1 block")
	assert.True(t, s2 < second && second < s3, "slide 2 figure inside slide 2 block")

	// The analyzer passes both figures through to the model verbatim.
	mockLLM := &analyze.MockLLM{Response: llm.Result{Text: "report"}}
	result, err := analyze.NewAnalyzer(mockLLM, config.DefaultAnalysisPrompt).Run(context.Background(), blob)
	assert.NoError(t, err)
	assert.Equal(t, "report", result)
	assert.Contains(t, mockLLM.Prompt, "Revenue: $10M")
	assert.Contains(t, mockLLM.Prompt, "Revenue: $12M")
}
