// Package speech connects the call to the external recognition and
// synthesis collaborators. Only text crosses this boundary.
package speech

// Result is one recognition event. Interim results may be revised; only
// final results are treated as an utterance.
type Result struct {
	Transcription string `json:"transcription"`
	IsFinal       bool   `json:"isFinal"`
	Error         error  `json:"-"`
}

// SpeakRequest asks the gateway to synthesize text.
type SpeakRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
