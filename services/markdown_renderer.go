package services

import (
	"regexp"
	"strategist/models"
	"strings"
	"unicode"
)

var (
	orderedLabelRe  = regexp.MustCompile(`^\d+\.`)
	orderedPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
	boldSpanRe      = regexp.MustCompile(`\*\*.*?\*\*`)
)

// RenderMarkdown classifies every line of text into a display block.
//
// Each line is classified on its own with first-match-wins precedence:
//
//	"## ", "### ", "#### "  heading level 2, 3, 4
//	"•" or "- "             bullet item (after trimming)
//	digits + "."            ordered item (after trimming)
//	empty                   spacer
//	anything else           paragraph with **bold** spans
//
// The output depends only on text.
func RenderMarkdown(text string) []models.DisplayBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]models.DisplayBlock, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, renderLine(line))
	}
	return blocks
}

func renderLine(line string) models.DisplayBlock {
	switch {
	case strings.HasPrefix(line, "## "):
		return models.DisplayBlock{Kind: models.BlockHeading, Level: 2, Text: strings.TrimPrefix(line, "## ")}
	case strings.HasPrefix(line, "### "):
		return models.DisplayBlock{Kind: models.BlockHeading, Level: 3, Text: strings.TrimPrefix(line, "### ")}
	case strings.HasPrefix(line, "#### "):
		return models.DisplayBlock{Kind: models.BlockHeading, Level: 4, Text: strings.TrimPrefix(line, "#### ")}
	}

	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "- ") {
		body := strings.TrimPrefix(trimmed, "•")
		if body == trimmed {
			body = strings.TrimPrefix(trimmed, "-")
		}
		return models.DisplayBlock{Kind: models.BlockBullet, Text: strings.TrimLeftFunc(body, unicode.IsSpace)}
	}

	if label := orderedLabelRe.FindString(trimmed); label != "" {
		return models.DisplayBlock{
			Kind:  models.BlockOrdered,
			Label: label,
			Text:  orderedPrefixRe.ReplaceAllString(trimmed, ""),
		}
	}

	if trimmed == "" {
		return models.DisplayBlock{Kind: models.BlockSpacer}
	}

	return models.DisplayBlock{Kind: models.BlockParagraph, Segments: splitBold(line)}
}

// splitBold alternates plain and bold runs. An unterminated "**" stays in
// the surrounding plain text.
func splitBold(line string) []models.Segment {
	var segments []models.Segment
	last := 0
	for _, loc := range boldSpanRe.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			segments = append(segments, models.Segment{Text: line[last:loc[0]]})
		}
		segments = append(segments, models.Segment{Text: line[loc[0]+2 : loc[1]-2], Bold: true})
		last = loc[1]
	}
	if last < len(line) {
		segments = append(segments, models.Segment{Text: line[last:]})
	}
	return segments
}
