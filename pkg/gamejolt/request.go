package gamejolt

import (
	"fmt"
	"strings"
)

// Param is a single key=value query fragment.
type Param struct {
	Key   string
	Value string
}

// BuildURL assembles the signed request URL for ep under root: the endpoint
// template, then params in the order supplied, then the game id, and finally
// the signature computed over everything before it.
func BuildURL(root string, ep Endpoint, creds Credentials, params ...Param) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(ep.Template(root))
	for _, p := range params {
		if strings.TrimSpace(p.Key) == "" {
			return "", fmt.Errorf("%w: %s: query parameter with empty key", ErrContract, ep.Name)
		}
		b.WriteByte('&')
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	b.WriteString("&game_id=")
	b.WriteString(creds.GameID)

	unsigned := b.String()
	return unsigned + "&signature=" + Sign(unsigned, creds.PrivateKey), nil
}

// JoinIDs renders ids as a single comma-separated value. It rejects an
// empty list and blank entries so the builder never emits an empty or
// doubled separator.
func JoinIDs(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: id list is empty", ErrContract)
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return "", fmt.Errorf("%w: id %d is blank", ErrContract, i)
		}
		if strings.Contains(id, ",") {
			return "", fmt.Errorf("%w: id %q contains a separator", ErrContract, id)
		}
		parts[i] = id
	}
	return strings.Join(parts, ","), nil
}
