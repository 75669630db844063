package polarization

import (
	"encoding/json"
	"fmt"
	"math"
)

// jonesDoc is the wire form of a Jones vector: [xRe, xIm, yRe, yIm].
// complex128 has no native JSON encoding.
type jonesDoc [4]float64

// MarshalJSON encodes the state as [xRe, xIm, yRe, yIm]
func (j Jones) MarshalJSON() ([]byte, error) {
	return json.Marshal(jonesDoc{real(j.X), imag(j.X), real(j.Y), imag(j.Y)})
}

// UnmarshalJSON decodes the [xRe, xIm, yRe, yIm] form
func (j *Jones) UnmarshalJSON(data []byte) error {
	var doc jonesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("polarization: invalid jones vector: %w", err)
	}
	j.X = complex(doc[0], doc[1])
	j.Y = complex(doc[2], doc[3])
	return nil
}

// ParseState maps a named polarization state to its Jones vector. Known
// names: horizontal, vertical, diagonal, antidiagonal, left-circular,
// right-circular. The empty string defaults to horizontal.
func ParseState(name string) (Jones, error) {
	switch name {
	case "", "horizontal":
		return Horizontal(), nil
	case "vertical":
		return Vertical(), nil
	case "diagonal":
		return Linear(math.Pi / 4), nil
	case "antidiagonal":
		return Linear(-math.Pi / 4), nil
	case "left-circular":
		return LeftCircular(), nil
	case "right-circular":
		return RightCircular(), nil
	}
	return Jones{}, fmt.Errorf("polarization: unknown state %q", name)
}
