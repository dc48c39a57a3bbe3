package weread

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const readerURLPrefix = "https://weread.qq.com/web/reader/"

// ReaderURL links to the book in the WeRead web reader.
func ReaderURL(bookID string) string {
	if bookID == "" {
		return ""
	}
	return readerURLPrefix + StrID(bookID)
}

// StrID derives the obfuscated id the web reader uses in its URLs.
func StrID(bookID string) string {
	if bookID == "" {
		return ""
	}

	digest := md5Hex(bookID)
	code, parts := transformID(bookID)

	var b strings.Builder
	b.WriteString(digest[:3])
	b.WriteString(code)
	b.WriteString("2")
	b.WriteString(digest[len(digest)-2:])
	for i, p := range parts {
		fmt.Fprintf(&b, "%02x", len(p))
		b.WriteString(p)
		if i < len(parts)-1 {
			b.WriteString("g")
		}
	}

	result := b.String()
	if len(result) < 20 {
		result += digest[:20-len(result)]
	}
	return result + md5Hex(result)[:3]
}

// transformID hex-encodes numeric ids in 9-digit chunks and any other id
// rune by rune.
func transformID(bookID string) (string, []string) {
	if isDigits(bookID) {
		var parts []string
		for i := 0; i < len(bookID); i += 9 {
			end := min(i+9, len(bookID))
			n, _ := strconv.ParseUint(bookID[i:end], 10, 64)
			parts = append(parts, strconv.FormatUint(n, 16))
		}
		return "3", parts
	}

	var b strings.Builder
	for _, r := range bookID {
		b.WriteString(strconv.FormatInt(int64(r), 16))
	}
	return "4", []string{b.String()}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
