package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque token pointing just past the entry with the given
// posting time and ledger sequence. Pages are read newest first, so the next page
// starts at the first entry whose sequence is lower.
func EncodeToken(postedAt time.Time, sequence int64) string {
	tokenStr := fmt.Sprintf("%s|%d", postedAt.UTC().Format(timeFormat), sequence)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	postedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (posted_at parse): %w", err)
	}

	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || sequence < 0 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (sequence parse)")
	}

	return postedAt, sequence, nil
}
