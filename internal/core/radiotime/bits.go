package radiotime

// BCD decodes a field whose bits carry the given weights (1, 2, 4, 8, 10, 20, ...).
// Any undetermined bit, or a decimal digit above 9, yields None
func BCD(bits []Maybe[bool], weights []uint8) Maybe[uint8] {
	if len(bits) != len(weights) {
		return None[uint8]()
	}
	var units, tens uint8
	for i, b := range bits {
		v, ok := b.Get()
		if !ok {
			return None[uint8]()
		}
		if !v {
			continue
		}
		if weights[i] < 10 {
			units += weights[i]
		} else {
			tens += weights[i] / 10
		}
	}
	if units > 9 || tens > 9 {
		return None[uint8]()
	}
	return Some(tens*10 + units)
}

// Parity checks bits, parity bit included, for even (odd=false) or odd
// (odd=true) parity. Some(true) means the check passed
func Parity(bits []Maybe[bool], odd bool) Maybe[bool] {
	ones := 0
	for _, b := range bits {
		v, ok := b.Get()
		if !ok {
			return None[bool]()
		}
		if v {
			ones++
		}
	}
	return Some((ones%2 == 1) == odd)
}
