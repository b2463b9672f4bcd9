package ner

import (
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkoukk/tiktoken-go"
)

type extractUnit struct {
	id    string
	start int
	end   int
	text  string
}

type sentence struct {
	start int
	end   int
	text  string
}

// splitIntoSentences splits text into sentences while keeping the byte
// offsets of each sentence in the original text. Offsets are needed later
// to map extracted mentions back onto the input.
func splitIntoSentences(text string) []sentence {
	var sentences []sentence
	start := -1

	flush := func(end int) {
		if start < 0 || end <= start {
			return
		}
		raw := text[start:end]
		if strings.TrimSpace(raw) != "" {
			sentences = append(sentences, sentence{
				start: start,
				end:   end,
				text:  raw,
			})
		}
		start = -1
	}

	for i, r := range text {
		if start < 0 {
			if unicode.IsSpace(r) {
				continue
			}
			start = i
		}
		switch r {
		case '.', '!', '?', '\n':
			flush(i + 1)
		}
	}
	flush(len(text))

	return sentences
}

// transformIntoUnits groups consecutive sentences into units of at most
// maxTokens tokens. A single oversized sentence still becomes its own unit.
func transformIntoUnits(
	text string,
	encoder string,
	maxTokens int,
) ([]extractUnit, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, err
	}

	sentences := splitIntoSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	var units []extractUnit
	chunkStart := -1
	chunkEnd := -1

	flushChunk := func() error {
		if chunkStart < 0 || chunkEnd <= chunkStart {
			return nil
		}
		uID, err := gonanoid.New()
		if err != nil {
			return err
		}

		first := sentences[chunkStart]
		last := sentences[chunkEnd-1]
		unit := extractUnit{
			id:    uID,
			start: first.start,
			end:   last.end,
			text:  text[first.start:last.end],
		}
		units = append(units, unit)
		chunkStart = -1
		chunkEnd = -1
		return nil
	}

	for i := range sentences {
		if chunkStart < 0 {
			chunkStart = i
			chunkEnd = i + 1
			continue
		}

		testText := text[sentences[chunkStart].start:sentences[i].end]
		testTokens := len(enc.Encode(testText, nil, nil))

		if testTokens <= maxTokens {
			chunkEnd = i + 1
		} else {
			if err := flushChunk(); err != nil {
				return nil, err
			}
			chunkStart = i
			chunkEnd = i + 1
		}
	}

	if err := flushChunk(); err != nil {
		return nil, err
	}

	return units, nil
}
