package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/agenthands/deckcheck/internal/llm"
)

// DeckExtractor reads a .pptx file directly: the OOXML package is a zip of
// XML parts, with slide order defined by the presentation part and resolved
// through its relationship tables.
type DeckExtractor struct {
	Vision    llm.VisionClient
	OCRPrompt string
}

func NewDeckExtractor(vision llm.VisionClient, ocrPrompt string) *DeckExtractor {
	return &DeckExtractor{Vision: vision, OCRPrompt: ocrPrompt}
}

// Extract walks the deck in slide order. Each slide contributes its header,
// then the text of every text-bearing shape in shape order, then the OCR text
// of every picture. All literal slide text precedes any model-derived text
// for that slide.
func (d *DeckExtractor) Extract(ctx context.Context, pptxPath string) (string, error) {
	zr, err := zip.OpenReader(pptxPath)
	if err != nil {
		return "", &ExtractionError{Path: pptxPath, Err: err}
	}
	defer zr.Close()

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	slidePaths, err := slideOrder(parts)
	if err != nil {
		return "", &ExtractionError{Path: pptxPath, Err: err}
	}

	log.Printf("Processing %d slides from .pptx file...", len(slidePaths))

	blocks := make([]SlideBlock, 0, len(slidePaths))
	for i, slidePath := range slidePaths {
		block := SlideBlock{Number: i + 1}

		shapes, err := parseSlideShapes(parts, slidePath)
		if err != nil {
			return "", &ExtractionError{Path: pptxPath, Err: fmt.Errorf("slide %d: %w", i+1, err)}
		}

		for _, s := range shapes {
			if !s.picture {
				block.Segments = append(block.Segments, s.textValue())
			}
		}

		embeds, err := slideImageTargets(parts, slidePath)
		if err != nil {
			return "", &ExtractionError{Path: pptxPath, Err: fmt.Errorf("slide %d: %w", i+1, err)}
		}
		for _, s := range shapes {
			if !s.picture || s.embed == "" {
				continue
			}
			mediaPath, ok := embeds[s.embed]
			if !ok {
				continue
			}
			text, accepted, err := d.ocrMedia(ctx, parts, mediaPath)
			if err != nil {
				return "", fmt.Errorf("slide %d: %w", i+1, err)
			}
			if accepted {
				block.Segments = append(block.Segments, "[Text from image on slide]: "+text)
			}
		}

		blocks = append(blocks, block)
	}

	return BuildBlob(blocks), nil
}

// ocrMedia runs one picture through the vision model. A safety-rejected
// image is reported as not accepted and contributes nothing.
func (d *DeckExtractor) ocrMedia(ctx context.Context, parts map[string]*zip.File, mediaPath string) (string, bool, error) {
	part, ok := parts[mediaPath]
	if !ok {
		return "", false, fmt.Errorf("media part %s missing", mediaPath)
	}
	data, err := readPart(part)
	if err != nil {
		return "", false, err
	}

	mime := imageMIMEs[strings.ToLower(path.Ext(mediaPath))]
	if mime == "" {
		mime = "image/png"
	}
	res, err := d.Vision.Describe(ctx, d.OCRPrompt, llm.Image{MIME: mime, Data: data})
	if err != nil {
		return "", false, err
	}
	if res.Rejected {
		return "", false, nil
	}
	return res.Text, true, nil
}

type deckShape struct {
	picture bool
	embed   string
	depth   int
	text    strings.Builder
}

// textValue joins the shape's paragraphs; the paragraph walker leaves a
// trailing separator behind.
func (s *deckShape) textValue() string {
	return strings.TrimSuffix(s.text.String(), "\n")
}

// parseSlideShapes streams the slide XML and records every shape in document
// order. Struct decoding cannot preserve the interleaving of different shape
// kinds, so this walks tokens directly.
func parseSlideShapes(parts map[string]*zip.File, slidePath string) ([]*deckShape, error) {
	part, ok := parts[slidePath]
	if !ok {
		return nil, fmt.Errorf("slide part %s missing", slidePath)
	}
	rc, err := part.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		shapes []*deckShape
		stack  []*deckShape
		depth  int
		inText bool
	)

	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "sp", "graphicFrame":
				s := &deckShape{depth: depth}
				shapes = append(shapes, s)
				stack = append(stack, s)
			case "pic":
				s := &deckShape{picture: true, depth: depth}
				shapes = append(shapes, s)
				stack = append(stack, s)
			case "blip":
				if top := topShape(stack); top != nil && top.picture {
					for _, a := range t.Attr {
						if a.Name.Local == "embed" {
							top.embed = a.Value
						}
					}
				}
			case "t":
				inText = true
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				// Paragraph boundary inside a text body.
				if top := topShape(stack); top != nil && !top.picture {
					top.text.WriteString("\n")
				}
			case "sp", "graphicFrame", "pic":
				if top := topShape(stack); top != nil && top.depth == depth {
					stack = stack[:len(stack)-1]
				}
			}
			depth--

		case xml.CharData:
			if inText {
				if top := topShape(stack); top != nil && !top.picture {
					top.text.Write(t)
				}
			}
		}
	}

	return shapes, nil
}

func topShape(stack []*deckShape) *deckShape {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type presentationXML struct {
	SldIDLst struct {
		SldIDs []struct {
			RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldId"`
	} `xml:"sldIdLst"`
}

// slideOrder resolves the ordered slide part paths from the presentation
// part and its relationships.
func slideOrder(parts map[string]*zip.File) ([]string, error) {
	var pres presentationXML
	if err := decodePart(parts, "ppt/presentation.xml", &pres); err != nil {
		return nil, err
	}

	rels, err := relTargets(parts, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	slides := make([]string, 0, len(pres.SldIDLst.SldIDs))
	for _, s := range pres.SldIDLst.SldIDs {
		target, ok := rels[s.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s unresolved", s.RelID)
		}
		slides = append(slides, path.Clean(path.Join("ppt", target)))
	}
	return slides, nil
}

// slideImageTargets maps a slide's r:embed ids to media part paths. A slide
// with no relationships part simply has no images.
func slideImageTargets(parts map[string]*zip.File, slidePath string) (map[string]string, error) {
	relsPath := path.Join(path.Dir(slidePath), "_rels", path.Base(slidePath)+".rels")
	if _, ok := parts[relsPath]; !ok {
		return nil, nil
	}

	rels, err := relTargets(parts, relsPath)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels))
	for id, target := range rels {
		targets[id] = path.Clean(path.Join(path.Dir(slidePath), target))
	}
	return targets, nil
}

func relTargets(parts map[string]*zip.File, relsPath string) (map[string]string, error) {
	var rels relationshipsXML
	if err := decodePart(parts, relsPath, &rels); err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		targets[r.ID] = r.Target
	}
	return targets, nil
}

func decodePart(parts map[string]*zip.File, name string, v interface{}) error {
	part, ok := parts[name]
	if !ok {
		return fmt.Errorf("package part %s missing", name)
	}
	data, err := readPart(part)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func readPart(part *zip.File) ([]byte, error) {
	rc, err := part.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
