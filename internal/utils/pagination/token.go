package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a keyset token from the sort timestamp and the row id
// of the last item of a page.
func EncodeToken(sortKey time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", sortKey.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token created by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	sortKey, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (time parse): %w", err)
	}
	return sortKey, parts[1], nil
}

// NextToken returns the token for the page after items when the page is full.
// key extracts the sort timestamp and id of an item.
func NextToken[T any](items []T, limit int, key func(T) (time.Time, string)) *string {
	if limit <= 0 || len(items) < limit {
		return nil
	}
	ts, id := key(items[len(items)-1])
	token := EncodeToken(ts, id)
	return &token
}
