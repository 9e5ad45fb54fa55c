package pngchunk

import (
	"sync"

	"gopkg.in/yaml.v3"
)

// TypeInfo describes a well-known chunk type from the public registry.
type TypeInfo struct {
	Tag         string `yaml:"tag"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// knownTypesYAML catalogs the registered public chunk types. The catalog is
// informational only: an unknown tag is still a perfectly valid chunk.
const knownTypesYAML = `
- tag: IHDR
  name: Image header
  description: Image dimensions, bit depth and color type; always the first chunk.
- tag: PLTE
  name: Palette
  description: Palette of up to 256 RGB entries for indexed-color images.
- tag: IDAT
  name: Image data
  description: Compressed image data; may be split across consecutive chunks.
- tag: IEND
  name: Image trailer
  description: Marks the end of the datastream; always the last chunk.
- tag: tRNS
  name: Transparency
  description: Alpha values or a transparent color for images without a full alpha channel.
- tag: cHRM
  name: Primary chromaticities
  description: CIE x,y chromaticities of the display primaries and white point.
- tag: gAMA
  name: Image gamma
  description: Gamma of the camera relative to the encoded samples.
- tag: iCCP
  name: Embedded ICC profile
  description: Compressed ICC color profile for the image.
- tag: sBIT
  name: Significant bits
  description: Original number of significant bits per sample.
- tag: sRGB
  name: Standard RGB color space
  description: Declares the image samples conform to sRGB, with a rendering intent.
- tag: tEXt
  name: Textual data
  description: Latin-1 keyword and text string.
- tag: zTXt
  name: Compressed textual data
  description: Latin-1 keyword with zlib-compressed text.
- tag: iTXt
  name: International textual data
  description: UTF-8 text with optional compression, language tag and translated keyword.
- tag: bKGD
  name: Background color
  description: Default background color to present the image against.
- tag: hIST
  name: Palette histogram
  description: Approximate usage frequency of each palette entry.
- tag: pHYs
  name: Physical pixel dimensions
  description: Intended pixel size or aspect ratio.
- tag: sPLT
  name: Suggested palette
  description: Reduced palette suggestion for indexed display.
- tag: tIME
  name: Last-modification time
  description: UTC time of the last image modification.
`

var (
	knownTypesOnce sync.Once
	knownTypes     map[string]TypeInfo
)

// LookupType returns registry information for a textual tag such as "IHDR",
// and whether the tag is a registered public type.
func LookupType(tag string) (TypeInfo, bool) {
	knownTypesOnce.Do(func() {
		var entries []TypeInfo
		if err := yaml.Unmarshal([]byte(knownTypesYAML), &entries); err != nil {
			// The catalog is a compile-time constant; failing to parse it
			// is a bug in this package, not in the caller's input.
			panic("pngchunk: parsing known type catalog: " + err.Error())
		}
		knownTypes = make(map[string]TypeInfo, len(entries))
		for _, e := range entries {
			knownTypes[e.Tag] = e
		}
	})
	info, ok := knownTypes[tag]
	return info, ok
}
