package notion

import (
	"github.com/jomei/notionapi"
)

const defaultColor = "default"

var colorStyles = map[int]string{
	1: "red",
	2: "purple",
	3: "blue",
	4: "green",
	5: "yellow",
}

var styleEmojis = map[int]notionapi.Emoji{
	0: "💡", // underline
	1: "⭐", // background
	2: "🌟", // wavy line
}

const (
	noteEmoji    notionapi.Emoji = "✍️"
	defaultEmoji notionapi.Emoji = "🌟"
)

func basic(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

// headingBlock clamps level to 1..3.
func headingBlock(level int, content string) notionapi.Block {
	h := notionapi.Heading{RichText: richText(content), Color: defaultColor}
	switch {
	case level <= 1:
		return &notionapi.Heading1Block{BasicBlock: basic(notionapi.BlockTypeHeading1), Heading1: h}
	case level == 2:
		return &notionapi.Heading2Block{BasicBlock: basic(notionapi.BlockTypeHeading2), Heading2: h}
	default:
		return &notionapi.Heading3Block{BasicBlock: basic(notionapi.BlockTypeHeading3), Heading3: h}
	}
}

func tableOfContentsBlock() notionapi.Block {
	return &notionapi.TableOfContentsBlock{
		BasicBlock:      basic(notionapi.BlockTypeTableOfContents),
		TableOfContents: notionapi.TableOfContents{Color: defaultColor},
	}
}

func quoteBlock(content string) notionapi.Block {
	return &notionapi.QuoteBlock{
		BasicBlock: basic(notionapi.BlockTypeQuote),
		Quote:      notionapi.Quote{RichText: richText(content), Color: defaultColor},
	}
}

// calloutBlock renders a highlight or note. Notes always get the note
// emoji; highlights get one by underline style.
func calloutBlock(content string, style, colorStyle *int, isNote bool) notionapi.Block {
	emoji := calloutEmoji(style, isNote)
	return &notionapi.CalloutBlock{
		BasicBlock: basic(notionapi.BlockTypeCallout),
		Callout: notionapi.Callout{
			RichText: richText(content),
			Icon:     &notionapi.Icon{Type: "emoji", Emoji: &emoji},
			Color:    calloutColor(colorStyle),
		},
	}
}

func calloutEmoji(style *int, isNote bool) notionapi.Emoji {
	if isNote {
		return noteEmoji
	}
	if style != nil {
		if e, ok := styleEmojis[*style]; ok {
			return e
		}
	}
	return defaultEmoji
}

func calloutColor(colorStyle *int) string {
	if colorStyle != nil {
		if c, ok := colorStyles[*colorStyle]; ok {
			return c
		}
	}
	return defaultColor
}
