package services

import (
	"strategist/models"
	"strings"
	"unicode"
)

// TextProcessor measures generated copy and presenter scripts
type TextProcessor struct {
	SpeakingWordsPerMinute float64 // Default: 150 words per minute
	ReadingWordsPerMinute  float64 // Default: 230 words per minute
}

// NewTextProcessor creates a new text processor
func NewTextProcessor() *TextProcessor {
	return &TextProcessor{
		SpeakingWordsPerMinute: 150.0,
		ReadingWordsPerMinute:  230.0,
	}
}

// EstimateSpeechDuration estimates how many seconds a presenter needs to speak text
func (tp *TextProcessor) EstimateSpeechDuration(text string) float64 {
	wordCount := tp.countWords(text)
	if wordCount == 0 {
		return 0.0
	}

	// Calculate base duration
	durationMinutes := float64(wordCount) / tp.SpeakingWordsPerMinute
	durationSeconds := durationMinutes * 60.0

	// Add 10% buffer for natural pauses
	return durationSeconds * 1.1
}

// EstimateReadingMinutes estimates how long a reader needs for text
func (tp *TextProcessor) EstimateReadingMinutes(text string) float64 {
	wordCount := tp.countWords(text)
	if wordCount == 0 {
		return 0.0
	}
	return float64(wordCount) / tp.ReadingWordsPerMinute
}

// countWords counts the number of words in text.
// Markdown markers standing alone ("##", "-", "•") are not words.
func (tp *TextProcessor) countWords(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		if strings.IndexFunc(word, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			count++
		}
	}
	return count
}

// splitIntoSentences splits text into individual sentences
func (tp *TextProcessor) splitIntoSentences(text string) []string {
	sentences := []string{}
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		// Check for sentence ending
		if tp.isSentenceEnding(runes[i]) {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	// Add remaining text
	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// isSentenceEnding checks if character is a sentence ending
func (tp *TextProcessor) isSentenceEnding(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '。' || r == '！' || r == '？'
}

// GetStats returns statistics about generated content
func (tp *TextProcessor) GetStats(text string) models.ContentStats {
	return models.ContentStats{
		Chars:          len([]rune(text)),
		Words:          tp.countWords(text),
		Sentences:      len(tp.splitIntoSentences(text)),
		ReadingMinutes: tp.EstimateReadingMinutes(text),
	}
}
