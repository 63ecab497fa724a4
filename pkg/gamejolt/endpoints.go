package gamejolt

import "strings"

// DefaultAPIRoot is the Game Jolt game API v1 root.
const DefaultAPIRoot = "http://gamejolt.com/api/game/v1/"

// Dialect selects how a response body is translated.
type Dialect int

const (
	// DialectEnvelope is the JSON {"response": {"success": ...}} wrapper.
	DialectEnvelope Dialect = iota
	// DialectRecords is the envelope carrying a list of records.
	DialectRecords
	// DialectDump is the line-based S/F format of raw data-store reads.
	DialectDump
)

func (d Dialect) String() string {
	switch d {
	case DialectEnvelope:
		return "envelope"
	case DialectRecords:
		return "records"
	case DialectDump:
		return "dump"
	default:
		return "unknown"
	}
}

// format is the value of the fixed format query parameter for the dialect.
func (d Dialect) format() string {
	if d == DialectDump {
		return "dump"
	}
	return "json"
}

// Endpoint is a single remote operation.
type Endpoint struct {
	Name    string
	Path    string
	Dialect Dialect
}

// Template returns the endpoint URL under root including the format
// selection, ready for query fragments to be appended.
func (e Endpoint) Template(root string) string {
	if root == "" {
		root = DefaultAPIRoot
	}
	return strings.TrimRight(root, "/") + "/" + strings.TrimLeft(e.Path, "/") + "?format=" + e.Dialect.format()
}

// Endpoints of the game API. Users, trophies, scores and key listings use
// the records dialect; raw data reads and updates use the dump dialect.
var (
	EndpointUsers     = Endpoint{Name: "users.fetch", Path: "users/", Dialect: DialectRecords}
	EndpointUsersAuth = Endpoint{Name: "users.auth", Path: "users/auth/", Dialect: DialectEnvelope}

	EndpointSessionOpen  = Endpoint{Name: "sessions.open", Path: "sessions/open/", Dialect: DialectEnvelope}
	EndpointSessionPing  = Endpoint{Name: "sessions.ping", Path: "sessions/ping/", Dialect: DialectEnvelope}
	EndpointSessionClose = Endpoint{Name: "sessions.close", Path: "sessions/close/", Dialect: DialectEnvelope}

	EndpointTrophies       = Endpoint{Name: "trophies.fetch", Path: "trophies/", Dialect: DialectRecords}
	EndpointTrophyAchieved = Endpoint{Name: "trophies.add-achieved", Path: "trophies/add-achieved/", Dialect: DialectEnvelope}

	EndpointScores      = Endpoint{Name: "scores.fetch", Path: "scores/", Dialect: DialectRecords}
	EndpointScoreAdd    = Endpoint{Name: "scores.add", Path: "scores/add/", Dialect: DialectEnvelope}
	EndpointScoreTables = Endpoint{Name: "scores.tables", Path: "scores/tables/", Dialect: DialectRecords}

	EndpointDataFetch  = Endpoint{Name: "data-store.fetch", Path: "data-store/", Dialect: DialectDump}
	EndpointDataSet    = Endpoint{Name: "data-store.set", Path: "data-store/set/", Dialect: DialectEnvelope}
	EndpointDataUpdate = Endpoint{Name: "data-store.update", Path: "data-store/update/", Dialect: DialectDump}
	EndpointDataRemove = Endpoint{Name: "data-store.remove", Path: "data-store/remove/", Dialect: DialectEnvelope}
	EndpointDataKeys   = Endpoint{Name: "data-store.get-keys", Path: "data-store/get-keys/", Dialect: DialectRecords}
)
