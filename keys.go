package switchback

import (
	"sort"
)

type Key string

const (
	// APIVersionKey stashes the API version parsed from a versioned request path.
	APIVersionKey Key = "APIVersionKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by switchback.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}

// A ByKey is a list of Keys that can be sorted and deduplicated.
type ByKey []Key

var _ sort.Interface = ByKey{}

func (k ByKey) Len() int           { return len(k) }
func (k ByKey) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }
func (k ByKey) Less(i, j int) bool { return k[i] < k[j] }

// UniqueSort sorts k and removes duplicate and zero-value Keys.
func (k ByKey) UniqueSort() ByKey {
	out := make(ByKey, 0, len(k))
	seen := make(map[Key]struct{}, len(k))
	for _, key := range k {
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	sort.Sort(out)

	return out
}
