package executor

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeOutput decodes subprocess output bytes. A UTF-8 byte-order-mark
// is stripped and the remainder decoded as UTF-8; otherwise UTF-8 is
// tried first, then the platform's preferred locale encoding, then lossy
// UTF-8 with replacement runes. Decoding degrades, it never fails.
func decodeOutput(data []byte) string {
	if bytes.HasPrefix(data, utf8BOM) {
		return lossyUTF8(data[len(utf8BOM):])
	}
	if utf8.Valid(data) {
		return string(data)
	}
	if enc := localeEncoding(); enc != nil {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			return string(decoded)
		}
	}
	return lossyUTF8(data)
}

func lossyUTF8(data []byte) string {
	return string(bytes.ToValidUTF8(data, []byte("�")))
}
