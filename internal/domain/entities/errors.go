package entities

import "errors"

// Domain errors
var (
	// Pipeline errors
	ErrNoUsableSegments = errors.New("no usable segments for assembly")
	ErrEmptySegmentList = errors.New("segment list is empty")

	// Collaborator errors
	ErrMalformedExtraction = errors.New("keyword extraction returned malformed output")
)
