package vicar_test

import (
	"fmt"
	"testing"
)

// buildHeader renders "LBLSIZE=n  rest" padded with spaces to a whole
// number of records, with n settled on its own fixed point.
func buildHeader(t *testing.T, recsize int, rest string) []byte {
	t.Helper()
	round := func(n int) int { return (n + recsize - 1) / recsize * recsize }
	size := round(len(fmt.Sprintf("LBLSIZE=%d  %s", 0, rest)))
	for {
		text := fmt.Sprintf("LBLSIZE=%d  %s", size, rest)
		if n := round(len(text)); n != size {
			size = n
			continue
		}
		b := make([]byte, size)
		copy(b, text)
		for i := len(text); i < size; i++ {
			b[i] = ' '
		}
		return b
	}
}

// buildFile appends a record payload to a padded header.
func buildFile(t *testing.T, recsize int, rest string, payload []byte) []byte {
	t.Helper()
	return append(buildHeader(t, recsize, rest), payload...)
}

// cubeValue is the test pattern for a (2, 3, 4) cube.
func cubeValue(b, l, s int) byte { return byte(b*100 + l*10 + s) }

// cubeBytes lays the (2, 3, 4) test cube out in the given organization.
func cubeBytes(org string) []byte {
	var out []byte
	switch org {
	case "BSQ":
		for b := 0; b < 2; b++ {
			for l := 0; l < 3; l++ {
				for s := 0; s < 4; s++ {
					out = append(out, cubeValue(b, l, s))
				}
			}
		}
	case "BIL":
		for l := 0; l < 3; l++ {
			for b := 0; b < 2; b++ {
				for s := 0; s < 4; s++ {
					out = append(out, cubeValue(b, l, s))
				}
			}
		}
	case "BIP":
		for l := 0; l < 3; l++ {
			for s := 0; s < 4; s++ {
				for b := 0; b < 2; b++ {
					out = append(out, cubeValue(b, l, s))
				}
			}
		}
	}
	return out
}
