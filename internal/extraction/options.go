package extraction

import "dicom-metadata/internal/discovery"

// Option configures an Extractor.
type Option func(*Extractor)

// WithParser substitutes the record parser, mainly for tests.
func WithParser(p discovery.Parser) Option {
	return func(x *Extractor) { x.parser = p }
}
