package region

import "fmt"

// AxialChars names axial levels: A-Z, 0-9, then ASCII 91 through 122.
var AxialChars = func() []byte {
	var out []byte
	for c := byte('A'); c <= 'Z'; c++ {
		out = append(out, c)
	}
	for c := byte('0'); c <= '9'; c++ {
		out = append(out, c)
	}
	for c := byte('Z' + 1); c <= 'z'; c++ {
		out = append(out, c)
	}
	return out
}()

func axialChar(axial int) (byte, error) {
	if axial < 0 || axial >= len(AxialChars) {
		return 0, fmt.Errorf("axial index %d has no label character (limit %d)", axial, len(AxialChars))
	}
	return AxialChars[axial], nil
}

// LocatorLabel returns the six-character label of the block at ring, position
// and axial index: the tens digit of the ring as a letter, the units digit,
// the position on three digits, then the axial character.
func LocatorLabel(ring, pos, axial int) (string, error) {
	if ring < 0 || ring >= 26 || pos < 0 || pos >= 1000 {
		return "", fmt.Errorf("ring %d position %d cannot be labelled", ring, pos)
	}
	c, err := axialChar(axial)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%c%d%03d%c", 'A'+ring/10, ring%10, pos, c), nil
}

// BlockName returns the six-character name of block axial in assembly
// assemNum.
func BlockName(assemNum, axial int) (string, error) {
	if assemNum < 0 || assemNum > 9999 {
		return "", fmt.Errorf("assembly number %d does not fit four digits", assemNum)
	}
	c, err := axialChar(axial)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("B%04d%c", assemNum, c), nil
}
