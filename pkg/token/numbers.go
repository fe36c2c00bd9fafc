package token

import "strconv"

func parseInt32(word string) (int32, bool) {
	v, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

func parseFloat32(word string) (float32, bool) {
	v, err := strconv.ParseFloat(word, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}
