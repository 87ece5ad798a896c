// Package interpreter maps a raw transcript to a structured command. Matching
// is ordered substring precedence, not exclusive keyword sets: "cancel" wins
// over everything, and "played" is tried before "play" so the longer keyword
// claims the query text.
package interpreter

import "strings"

const wakeWord = "jarvis"

// Interpret turns a raw transcript into a Command. ok is false when no
// command should be emitted at all (empty transcript, wake word only, or a
// play request without a query).
func Interpret(raw string) (Command, bool) {
	cleaned := strings.TrimSpace(StripWakeWord(raw))
	lower := strings.ToLower(cleaned)

	if lower == "" {
		return Command{}, false
	}

	if strings.Contains(lower, "cancel") {
		return Command{Kind: KindCancel}, true
	}

	if strings.Contains(lower, "now") && strings.Contains(lower, "playing") {
		return Command{Kind: KindNowPlaying}, true
	}

	// "played" is a common recognition of "play" followed by a song title, so
	// it keys the same extraction.
	if idx := strings.Index(lower, "played"); idx >= 0 {
		return playCommand(cleaned, idx+len("played"))
	}

	if idx := strings.Index(lower, "play"); idx >= 0 {
		return playCommand(cleaned, idx+len("play"))
	}

	switch {
	case strings.Contains(lower, "stop"):
		return Command{Kind: KindStop}, true
	case strings.Contains(lower, "pause"):
		return Command{Kind: KindPause}, true
	case strings.Contains(lower, "resume"):
		return Command{Kind: KindResume}, true
	case strings.Contains(lower, "next"), strings.Contains(lower, "skip"):
		return Command{Kind: KindNext}, true
	case strings.Contains(lower, "clear"):
		return Command{Kind: KindClear}, true
	}

	if (strings.Contains(lower, "kill") && strings.Contains(lower, "self")) ||
		(strings.Contains(lower, "self") && strings.Contains(lower, "destruct")) {
		return Command{Kind: KindTerminate}, true
	}

	return Command{Kind: KindUnrecognized}, true
}

// StripWakeWord removes a leading wake-word token (with an optional trailing
// comma, case-insensitive). Only the first token is stripped; "jarvis" later
// in the sentence is left alone.
func StripWakeWord(raw string) string {
	trimmed := strings.TrimSpace(raw)

	first, rest, _ := strings.Cut(trimmed, " ")
	if strings.TrimRight(strings.ToLower(first), ",") == wakeWord {
		return strings.TrimSpace(rest)
	}

	return trimmed
}

// playCommand extracts the song query from the original-case transcript so
// the spoken capitalization of the title survives; only the branch decision
// used the lowercased copy.
func playCommand(cleaned string, start int) (Command, bool) {
	query := strings.TrimSpace(cleaned[start:])

	immediate := false

	lowerQuery := strings.ToLower(query)
	if strings.HasPrefix(lowerQuery, "immediately") {
		immediate = true
		query = strings.TrimSpace(query[len("immediately"):])
	} else if strings.HasPrefix(lowerQuery, "immediate") {
		immediate = true
		query = strings.TrimSpace(query[len("immediate"):])
	}

	if query == "" {
		return Command{}, false
	}

	return Command{Kind: KindPlay, Query: query, Immediate: immediate}, true
}
